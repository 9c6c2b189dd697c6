package svg

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLineRendersSeries(t *testing.T) {
	out, err := Line(0, 0, []float64{10, 20, 7, 0, 5, 30, 12},
		[]string{"05-01", "05-02", "05-03", "05-04", "05-05", "05-06", "05-07"},
		LineOpts{Title: "Net profit"})
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "<svg"))
	require.Contains(t, out, "<title>Net profit</title>")
	require.Contains(t, out, "05-07")
	require.Contains(t, out, "stroke-linejoin")
}

func TestLineRejectsBadInput(t *testing.T) {
	_, err := Line(100, 100, nil, nil, LineOpts{})
	require.Error(t, err)

	_, err = Line(100, 100, []float64{1, 2}, []string{"a"}, LineOpts{})
	require.Error(t, err)
}

func TestLineEscapesLabels(t *testing.T) {
	out, err := Line(0, 0, []float64{1}, []string{"<b>"}, LineOpts{})
	require.NoError(t, err)
	require.NotContains(t, out, "<b>")
	require.Contains(t, out, "&lt;b&gt;")
}

func TestLineHandlesFlatNegativeSeries(t *testing.T) {
	out, err := Line(0, 0, []float64{-5, -5, -5}, []string{"a", "b", "c"}, LineOpts{})
	require.NoError(t, err)
	require.Contains(t, out, "<svg")
}

func TestFormatTick(t *testing.T) {
	require.Equal(t, "1.5k", formatTick(1500))
	require.Equal(t, "250", formatTick(250))
}
