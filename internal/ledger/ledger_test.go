package ledger_test

import (
	"os"
	"path/filepath"
	"testing"

	"plexnote/internal/ledger"
	"plexnote/internal/media"
)

func newLedger(t *testing.T, maxRecords int) *ledger.Ledger {
	t.Helper()
	path := filepath.Join(t.TempDir(), "posted.json")
	return ledger.New(path, maxRecords, nil)
}

func TestAdmitThenDuplicateSuppressed(t *testing.T) {
	l := newLedger(t, 10)

	admitted, err := l.Admit("42", "movie::dune::2021")
	if err != nil {
		t.Fatalf("admit: %v", err)
	}
	if !admitted {
		t.Fatal("first admission must succeed")
	}

	admitted, err = l.Admit("42", "movie::dune::2021")
	if err != nil {
		t.Fatalf("admit: %v", err)
	}
	if admitted {
		t.Fatal("second admission must be suppressed")
	}
}

func TestAdmitMatchesOnSignatureAlone(t *testing.T) {
	l := newLedger(t, 10)

	if _, err := l.Admit("42", "movie::dune::2021"); err != nil {
		t.Fatalf("admit: %v", err)
	}
	// Same content re-added under a fresh rating key.
	admitted, err := l.Admit("77", "movie::dune::2021")
	if err != nil {
		t.Fatalf("admit: %v", err)
	}
	if admitted {
		t.Fatal("signature match must suppress admission")
	}
}

func TestSetStatusTransition(t *testing.T) {
	l := newLedger(t, 10)
	if _, err := l.Admit("42", "sig"); err != nil {
		t.Fatalf("admit: %v", err)
	}

	if err := l.SetStatus("42", "sig", ledger.StatusSent); err != nil {
		t.Fatalf("set status: %v", err)
	}
	records, err := l.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 1 || records[0].Status != ledger.StatusSent {
		t.Fatalf("records = %+v", records)
	}
}

func TestFailRecordStillSuppresses(t *testing.T) {
	l := newLedger(t, 10)
	if _, err := l.Admit("42", "sig"); err != nil {
		t.Fatalf("admit: %v", err)
	}
	if err := l.SetStatus("42", "sig", ledger.StatusFail); err != nil {
		t.Fatalf("set status: %v", err)
	}

	admitted, err := l.Admit("42", "sig")
	if err != nil {
		t.Fatalf("admit: %v", err)
	}
	if admitted {
		t.Fatal("fail records must still suppress re-admission")
	}
}

func TestRemoveUnblocksReadmission(t *testing.T) {
	l := newLedger(t, 10)
	if _, err := l.Admit("42", "sig"); err != nil {
		t.Fatalf("admit: %v", err)
	}

	removed, err := l.Remove("42")
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if removed != 1 {
		t.Fatalf("removed = %d, want 1", removed)
	}

	admitted, err := l.Admit("42", "sig")
	if err != nil {
		t.Fatalf("admit: %v", err)
	}
	if !admitted {
		t.Fatal("re-admission after removal must succeed")
	}
}

func TestCapEvictsOldestFirst(t *testing.T) {
	l := newLedger(t, 3)
	for _, key := range []string{"1", "2", "3", "4", "5"} {
		if _, err := l.Admit(key, "sig-"+key); err != nil {
			t.Fatalf("admit %s: %v", key, err)
		}
	}

	records, err := l.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d records, want 3", len(records))
	}
	if records[0].RatingKey != "3" || records[2].RatingKey != "5" {
		t.Fatalf("unexpected survivors: %+v", records)
	}
}

func TestCorruptFileTreatedAsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "posted.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write corrupt file: %v", err)
	}
	l := ledger.New(path, 10, nil)

	admitted, err := l.Admit("42", "sig")
	if err != nil {
		t.Fatalf("admit: %v", err)
	}
	if !admitted {
		t.Fatal("corrupt ledger must admit like an empty one")
	}
}

func TestSignatureShapes(t *testing.T) {
	tests := []struct {
		name string
		item media.Item
		want string
	}{
		{
			"movie",
			media.Item{MediaType: "movie", Title: "Dune", Year: 2021},
			"movie::dune::2021",
		},
		{
			"episode",
			media.Item{MediaType: "episode", Title: "Geheimnisse", ParentMediaIndex: 1, MediaIndex: 3},
			"episode::geheimnisse::s1::e3",
		},
		{
			"season",
			media.Item{MediaType: "season", Title: "Staffel 2", MediaIndex: 2},
			"season::staffel 2::s2",
		},
		{
			"show with release date fallback",
			media.Item{MediaType: "show", Title: "Dark", OriginallyAvailableAt: "2017-12-01"},
			"show::dark::2017-12-01",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ledger.Signature(&tc.item); got != tc.want {
				t.Fatalf("signature = %q, want %q", got, tc.want)
			}
		})
	}
}
