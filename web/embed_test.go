package web_test

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SeanBroadwell/uw-ischool-sharepoint-links/web"
)

func TestAssets(t *testing.T) {
	assets := web.Assets()

	index, err := fs.ReadFile(assets, "index.html")
	require.NoError(t, err)
	assert.Contains(t, string(index), `id="cardGrid"`)
	assert.Contains(t, string(index), `id="addCardBtn"`)
	assert.Contains(t, string(index), `src="/script.js"`)

	_, err = fs.Stat(assets, "style.css")
	require.NoError(t, err)
}

func TestScriptPersistsToLocalStorage(t *testing.T) {
	script, err := fs.ReadFile(web.Assets(), "script.js")
	require.NoError(t, err)

	s := string(script)
	assert.Contains(t, s, `const STORAGE_KEY = "cards"`)
	assert.Contains(t, s, "localStorage.setItem")
	assert.Contains(t, s, "HR Resources")
	assert.Contains(t, s, "IT Helpdesk")
	assert.NotContains(t, s, "fetch(", "the card board keeps its data in the browser")
}
