package markup

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fragment = `<table style="width:100%"><tr style="height: 15.00pt">` +
	`<td rowspan="1" colspan="2" style="font-family: &#34;Courier New&#34;, Arial;">a &amp; b</td>` +
	`<td rowspan="1" colspan="1" style="">line
break</td></tr></table>`

func TestNormalize_Compact(t *testing.T) {
	got, err := Normalize(fragment, Options{})
	require.NoError(t, err)

	want := `<table style="width:100%"><tbody><tr style="height: 15.00pt">` +
		`<td rowspan="1" colspan="2" style="font-family: &#34;Courier New&#34;, Arial;">a &amp; b</td>` +
		`<td rowspan="1" colspan="1" style="">linebreak</td></tr></tbody></table>`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Normalize() mismatch (-want +got):\n%s", diff)
	}
	assert.NotContains(t, got, "\n")
}

func TestNormalize_Idempotent(t *testing.T) {
	once, err := Normalize(fragment, Options{})
	require.NoError(t, err)
	twice, err := Normalize(once, Options{})
	require.NoError(t, err)
	assert.Equal(t, once, twice)
}

func TestNormalize_Beautify(t *testing.T) {
	got, err := Normalize(fragment, Options{Beautify: true})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	require.GreaterOrEqual(t, len(lines), 7)
	assert.Equal(t, `<table style="width:100%">`, lines[0])
	assert.Equal(t, `    <tbody>`, lines[1])
	assert.Equal(t, `        <tr style="height: 15.00pt">`, lines[2])
	assert.True(t, strings.HasPrefix(lines[3], `            <td rowspan="1" colspan="2"`), lines[3])
	assert.Equal(t, `</table>`, lines[len(lines)-1])
	for _, l := range lines {
		assert.LessOrEqual(t, len(l), DefaultWrapAt, l)
	}
}

func TestNormalize_BeautifyWraps(t *testing.T) {
	long := strings.Repeat("x", 60)
	in := `<table><tr><td a="` + long + `" b="` + long + `">v</td></tr></table>`

	got, err := Normalize(in, Options{Beautify: true, WrapAt: 80, Indent: 2})
	require.NoError(t, err)
	assert.Contains(t, got, "      <td a=\""+long+"\"\n        b=\""+long+"\">v</td>\n")
}

func TestNormalize_Errors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"no table", "<p>hello</p>"},
		{"two tables", "<table></table><table></table>"},
		{"trailing text", "<table></table>tail"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Normalize(tt.in, Options{})
			require.Error(t, err)
			var merr *Error
			assert.True(t, errors.As(err, &merr))
		})
	}
}
