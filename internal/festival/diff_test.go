package festival

import "testing"

func TestDiff(t *testing.T) {
	a := &Record{Name: "가", McstURL: "https://www.mcst.go.kr/view?pSeq=1"}
	b := &Record{Name: "나", McstURL: "https://www.mcst.go.kr/view?pSeq=2"}
	c := &Record{Name: "다", McstURL: "https://www.mcst.go.kr/view?pSeq=3"}

	t.Run("finds added and removed festivals", func(t *testing.T) {
		result := Diff([]*Record{a, b}, []*Record{b, c})

		if len(result.Added) != 1 || result.Added[0] != c {
			t.Errorf("expected only 다 to be added, got %v", names(result.Added))
		}
		if len(result.Removed) != 1 || result.Removed[0] != a {
			t.Errorf("expected only 가 to be removed, got %v", names(result.Removed))
		}
		if !result.Changed() {
			t.Error("expected Changed() to be true")
		}
	})

	t.Run("handles nil previous dataset", func(t *testing.T) {
		result := Diff(nil, []*Record{a, b, c})

		if len(result.Added) != 3 {
			t.Errorf("expected all 3 festivals to be new, got %d", len(result.Added))
		}
		if len(result.Removed) != 0 {
			t.Errorf("expected no removed festivals, got %d", len(result.Removed))
		}
	})

	t.Run("unchanged run", func(t *testing.T) {
		result := Diff([]*Record{a, b}, []*Record{a, b})

		if result.Changed() {
			t.Errorf("expected no changes, got added=%d removed=%d", len(result.Added), len(result.Removed))
		}
	})
}
