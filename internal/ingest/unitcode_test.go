package ingest

import (
	"context"
	"errors"
	"regexp"
	"testing"
)

type exhaustedStore struct{ fakeStore }

func (s *exhaustedStore) ExistsUnitCode(ctx context.Context, code string) (bool, error) {
	return true, nil
}

func TestGenerateCodeShape(t *testing.T) {
	gen := NewSeededCodeGenerator("KPU-", "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789", 6, 20, 1)
	st := newFakeStore()
	pat := regexp.MustCompile(`^KPU-[A-Z0-9]{6}$`)

	seen := make(map[string]struct{})
	for i := 0; i < 50; i++ {
		code, err := gen.Generate(context.Background(), st)
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}
		if !pat.MatchString(code) {
			t.Fatalf("code %q does not match KPU-XXXXXX", code)
		}
		if _, dup := seen[code]; dup {
			t.Fatalf("code %q generated twice", code)
		}
		seen[code] = struct{}{}
	}
}

func TestGenerateSkipsTakenCodes(t *testing.T) {
	gen := NewSeededCodeGenerator("KPU-", "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789", 6, 20, 7)
	probe := NewSeededCodeGenerator("KPU-", "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789", 6, 20, 7)

	st := newFakeStore()
	first := probe.candidate()
	st.complaints = append(st.complaints, &Complaint{UnitCode: first})

	code, err := gen.Generate(context.Background(), st)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if code == first {
		t.Fatalf("returned a taken code %q", code)
	}
}

func TestGenerateExhaustion(t *testing.T) {
	gen := NewSeededCodeGenerator("KPU-", "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789", 6, 5, 1)
	_, err := gen.Generate(context.Background(), &exhaustedStore{})
	if !errors.Is(err, ErrCodeSpaceExhausted) {
		t.Fatalf("err = %v, want ErrCodeSpaceExhausted", err)
	}
}
