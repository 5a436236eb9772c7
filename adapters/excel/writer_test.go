package excel

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/Mazzol/MVA/domain/sensitivity"
)

func TestWorkbookReport_SobolTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "indices.xlsx")
	table := &sensitivity.SobolTable{Records: []sensitivity.SobolRecord{
		{Parameter: 0, FirstOrder: 0.5, TotalOrder: 1.5},
	}}

	if err := NewWorkbookReport(path).Write(context.Background(), table); err != nil {
		t.Fatalf("write: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	cases := []struct {
		cell string
		want string
	}{
		{"A1", "parameter"},
		{"B1", "Si"},
		{"C1", "STi"},
		{"A2", "0"},
		{"B2", "0.5"},
		{"C2", "1.5"},
	}
	for _, tc := range cases {
		got, err := f.GetCellValue("Sheet1", tc.cell)
		if err != nil {
			t.Fatalf("read cell %s: %v", tc.cell, err)
		}
		if got != tc.want {
			t.Errorf("cell %s = %q, want %q", tc.cell, got, tc.want)
		}
	}
}

func TestWorkbookReport_PawnTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "indices.xlsx")
	table := &sensitivity.PawnTable{
		Spec:    sensitivity.Pawn{NF: 2, Stat: sensitivity.StatMax, Alpha: 0.05},
		Records: []sensitivity.PawnRecord{{Parameter: 0, Index: 1, Influential: true}},
	}

	if err := NewWorkbookReport(path).Write(context.Background(), table); err != nil {
		t.Fatalf("write: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	got, err := f.GetCellValue("Sheet1", "C2")
	if err != nil {
		t.Fatal(err)
	}
	if got != "TRUE" {
		t.Errorf("influential cell = %q, want TRUE", got)
	}
}
