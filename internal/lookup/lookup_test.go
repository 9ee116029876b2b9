package lookup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invoicery-dev/invoicery/internal/model"
)

func row(pairs ...string) *model.Row {
	r := model.NewRow()
	for i := 0; i < len(pairs); i += 2 {
		r.Set(pairs[i], pairs[i+1])
	}
	return r
}

func TestSlugifyType(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"cost_centers", "cost_centers"},
		{"Cost Centers", "cost_centers"},
		{"  GL Accounts  ", "gl_accounts"},
		{"payment-terms!", "paymentterms"},
		{"Åland", "land"},
		{"///", ""},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SlugifyType(tt.in), "input %q", tt.in)
	}
}

func TestMissingColumns(t *testing.T) {
	rows := []*model.Row{row("externalId", "x", "key", "k")}
	assert.Equal(t, []string{"description"}, MissingColumns(rows))

	full := []*model.Row{row("externalId", "x", "key", "k", "description", "d")}
	assert.Empty(t, MissingColumns(full))

	assert.Empty(t, MissingColumns(nil))
}

func TestBuildRows(t *testing.T) {
	rows := []*model.Row{
		row("externalId", "CC-100", "key", "100", "description", "Admin", "extra", "kept"),
		row("externalId", "CC-200", "key", "200", "description", ""),
		row("externalId", "", "key", "", "description", ""),
	}

	got := BuildRows(rows)
	require.Len(t, got, 2, "the all-empty row disappears")

	assert.Equal(t, map[string]string{
		"externalId": "CC-100", "key": "100", "description": "Admin", "extra": "kept",
	}, got[0])
	assert.Equal(t, map[string]string{
		"externalId": "CC-200", "key": "200",
	}, got[1], "empty cells are dropped, not sent as empty strings")
}
