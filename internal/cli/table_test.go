package cli

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

func TestTableAlignment(t *testing.T) {
	lipgloss.SetColorProfile(termenv.Ascii)

	tbl := Table{Headers: []string{"drive", "thd"}}
	tbl.AddRow("0", "1.5%")
	tbl.AddRow("24", "31.25%")
	tbl.AddRow("12")

	want := strings.Join([]string{
		"drive     thd",
		"0        1.5%",
		"24     31.25%",
		"12           ",
	}, "\n") + "\n"

	if got := tbl.String(); got != want {
		t.Fatalf("table:\n%q\nwant:\n%q", got, want)
	}
}

func TestEmptyTable(t *testing.T) {
	if got := (&Table{}).String(); got != "" {
		t.Fatalf("String() = %q, want empty", got)
	}
}
