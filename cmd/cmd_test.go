package cmd

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderTable(t *testing.T) {
	out := renderTable([]string{"Language", "Code"}, [][]string{
		{"English", "en"},
		{"Bengali"},
	})

	lines := strings.Split(out, "\n")
	headerRow := -1
	for i, line := range lines {
		if strings.Contains(line, "LANGUAGE") {
			headerRow = i
			break
		}
	}
	require.NotEqual(t, -1, headerRow, "header row missing:\n%s", out)
	assert.Contains(t, lines[headerRow], "CODE")
	assert.NotContains(t, lines[headerRow], "English")

	body := strings.Join(lines[headerRow+1:], "\n")
	assert.Contains(t, body, "English")
	assert.Contains(t, body, "en")
	assert.Contains(t, body, "Bengali")
	assert.Equal(t, "", renderTable(nil, nil))
}

func TestPrintLanguages(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printLanguages(&buf))

	out := buf.String()
	for _, want := range []string{"English", "Bengali", "NotoSansBengali-Regular.ttf", "Hindi", "DejaVuSans.ttf"} {
		assert.Contains(t, out, want)
	}
}

func TestIsTerminal_Buffer(t *testing.T) {
	assert.False(t, isTerminal(&bytes.Buffer{}))
}

func TestCheckPDFOutput(t *testing.T) {
	// The check looks at the writer the PDF goes to, not the process stdout.
	assert.NoError(t, checkPDFOutput("-", &bytes.Buffer{}))
	assert.NoError(t, checkPDFOutput("kyoto.pdf", &bytes.Buffer{}))

	r, w, err := os.Pipe()
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = r.Close()
		_ = w.Close()
	})
	assert.NoError(t, checkPDFOutput("-", w))
	assert.NoError(t, checkPDFOutput("kyoto.pdf", os.Stdout), "a named output file skips the terminal check")
}

func TestCommandsRegistered(t *testing.T) {
	var names []string
	for _, c := range rootCmd.Commands() {
		names = append(names, c.Name())
	}
	joined := strings.Join(names, " ")
	for _, want := range []string{"plan", "serve", "languages"} {
		assert.Contains(t, joined, want)
	}

	f := planCmd.Flags().Lookup("activity")
	require.NotNil(t, f)
	assert.Equal(t, "stringArray", f.Value.Type())
}
