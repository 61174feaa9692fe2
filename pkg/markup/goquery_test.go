package markup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `<html><body>
<div class="result">
  <h5 class="titreamz"><b>ⴰⵎⴰⵏ</b> <i>[aman]</i> nom</h5>
  <ul class="titreamz"><li>etat d'annexion : <b>ⵡⴰⵎⴰⵏ</b></li></ul>
  <ul>
    <li>Sens<br/> eau <br/> ماء </li>
    <li><b>ⵜⵉⵔⵎⵜ</b><br/>repas<br/>وجبة</li>
    <li><b>x</b><br/><span>y</span><br/>z</li>
    <ul><li>nested</li></ul>
  </ul>
</div>
</body></html>`

func parseSample(t *testing.T) Fragment {
	t.Helper()
	doc, err := ParseString(sample)
	require.NoError(t, err)
	return doc
}

func TestFind(t *testing.T) {
	doc := parseSample(t)

	h5, ok := doc.Find(Query{Tag: "h5", Class: "titreamz"})
	require.True(t, ok)
	b, ok := h5.Find(Tag("b"))
	require.True(t, ok)
	assert.Equal(t, "ⴰⵎⴰⵏ", b.Text())

	_, ok = doc.Find(Query{Tag: "h5", Class: "missing"})
	assert.False(t, ok)
}

func TestFindAllExcludingClass(t *testing.T) {
	doc := parseSample(t)
	lists := doc.FindAll(Query{Tag: "ul", NotClass: "titreamz"})
	assert.Len(t, lists, 2)
}

func TestFindWithinDeduplicates(t *testing.T) {
	doc := parseSample(t)
	// The nested <li> sits under two lists but must come back once.
	items := doc.FindWithin(Tag("ul"), Tag("li"))
	assert.Len(t, items, 5)
}

func TestTextRuns(t *testing.T) {
	doc := parseSample(t)
	items := doc.FindWithin(Query{Tag: "ul", NotClass: "titreamz"}, Tag("li"))
	require.NotEmpty(t, items)
	assert.Equal(t, []string{"Sens", "eau", "ماء"}, items[0].TextRuns())
}

func TestTextAfter(t *testing.T) {
	doc := parseSample(t)
	items := doc.FindWithin(Query{Tag: "ul", NotClass: "titreamz"}, Tag("li"))
	require.Len(t, items, 4)

	assert.Equal(t, []string{"repas", "وجبة"}, items[1].TextAfter("br"))
	assert.Equal(t, []string{"", "z"}, items[2].TextAfter("br"))
	assert.Empty(t, items[3].TextAfter("br"))
}
