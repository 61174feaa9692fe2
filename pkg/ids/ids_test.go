package ids

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRange(t *testing.T) {
	got, err := Range(143752, 143755)
	require.NoError(t, err)
	assert.Equal(t, []string{"143752", "143753", "143754"}, got)

	_, err = Range(10, 10)
	assert.ErrorIs(t, err, ErrEmptyRange)
	_, err = Range(-1, 3)
	assert.ErrorIs(t, err, ErrEmptyRange)
}

func TestFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ids.txt")
	content := "# retry list\n143752,\n\n  143760  \n#143761\n143799, \n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	got, err := FromFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"143752", "143760", "143799"}, got)
}

func TestFromFileEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ids.txt")
	require.NoError(t, os.WriteFile(path, []byte("# nothing\n"), 0o644))

	_, err := FromFile(path)
	assert.Error(t, err)

	_, err = FromFile(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}

func TestFromFailureLog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "failed_sessions_1-9.log")
	content := "http-error: Session ID: 3 - Status code: 500\n" +
		"content-error-no-section: Session ID: 7 - No 'section.ddoc_funfact_detail_haut' found\n" +
		"http-error: Session ID: 3 - Status code: 502\n" +
		"garbage\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	got, err := FromFailureLog(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"3", "7"}, got)
}
