package sections_test

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verge88/api-npa3/internal/domain"
	"github.com/verge88/api-npa3/internal/sections"
)

func parse(t *testing.T, markup string) *goquery.Document {
	t.Helper()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	require.NoError(t, err)

	return doc
}

func TestSplit_HeadingsInDocumentOrder(t *testing.T) {
	t.Parallel()

	doc := parse(t, `<html><body>
<p>Вводный текст</p>
<h1>Часть 1</h1><p>Альфа</p>
<h2>Раздел 1.1</h2><p>Бета <b>жирный</b></p>
<h1>Часть 2</h1><p>Гамма</p>
</body></html>`)

	got := sections.Split(doc)

	assert.Equal(t, []domain.Section{
		{Title: sections.IntroTitle, Content: "Вводный текст"},
		{Title: "Часть 1", Content: "Часть 1 Альфа"},
		{Title: "Раздел 1.1", Content: "Раздел 1.1 Бета жирный"},
		{Title: "Часть 2", Content: "Часть 2 Гамма"},
	}, got)
}

func TestSplit_NoLeadingTextSkipsIntro(t *testing.T) {
	t.Parallel()

	got := sections.Split(parse(t, `<body><h2>Общие положения</h2><p>Текст</p></body>`))

	require.Len(t, got, 1)
	assert.Equal(t, "Общие положения", got[0].Title)
}

func TestSplit_NoHeadingsSingleSection(t *testing.T) {
	t.Parallel()

	got := sections.Split(parse(t, `<body><div>Первый абзац</div><div>Второй
    абзац</div></body>`))

	assert.Equal(t, []domain.Section{
		{Title: sections.WholeDocumentTitle, Content: "Первый абзац Второй абзац"},
	}, got)
}

func TestSplit_EmptyRegion(t *testing.T) {
	t.Parallel()

	got := sections.Split(parse(t, `<body><script>var a = 1;</script>   </body>`))
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestSplit_NoiseNeverLeaks(t *testing.T) {
	t.Parallel()

	doc := parse(t, `<html><head><style>.x{color:red}</style></head><body>
<header>Шапка сайта</header>
<nav>Меню</nav>
<h1>Заголовок</h1>
<script>trackVisitor()</script>
<p>Полезный текст<!-- скрытый комментарий --></p>
<aside>Реклама</aside>
<footer>Подвал</footer>
</body></html>`)

	got := sections.Split(doc)
	require.NotEmpty(t, got)

	for _, s := range got {
		for _, noise := range []string{"Шапка", "Меню", "trackVisitor", "Реклама", "Подвал", "color:red", "комментарий"} {
			assert.NotContains(t, s.Content, noise)
			assert.NotContains(t, s.Title, noise)
		}
	}

	// The document itself is stripped so later full-text reads stay clean.
	assert.NotContains(t, doc.Text(), "Реклама")
}

func TestSplit_ContentRegionPriority(t *testing.T) {
	t.Parallel()

	doc := parse(t, `<body>
<main><p>Основная область</p></main>
<div class="doc-content"><p>Текст документа</p></div>
</body>`)

	got := sections.Split(doc)
	require.Len(t, got, 1)
	assert.Equal(t, "Текст документа", got[0].Content)
}

func TestSplit_DeepNesting(t *testing.T) {
	t.Parallel()

	// Below the parser's 512-element open stack limit.
	const depth = 400
	markup := "<body><h1>Глубина</h1>" + strings.Repeat("<span>", depth) + "дно" + strings.Repeat("</span>", depth) + "</body>"

	got := sections.Split(parse(t, markup))
	require.Len(t, got, 1)
	assert.Equal(t, "Глубина дно", got[0].Content)
}

func TestState_Boundaries(t *testing.T) {
	t.Parallel()

	s := sections.NewState()
	s.Text("  ")
	s.Heading(" Первый \n раздел ")
	s.Text("один")
	s.Text("\n два ")
	s.Heading("Пустой")
	s.Heading("Третий")
	s.Text("три")

	want := []domain.Section{
		{Title: "Первый раздел", Content: "один два"},
		{Title: "Третий", Content: "три"},
	}
	assert.Equal(t, want, s.Finish())
	assert.Equal(t, want, s.Finish())
}

func TestContentRegion_FallsBackToBody(t *testing.T) {
	t.Parallel()

	region := sections.ContentRegion(parse(t, `<body><p>x</p></body>`))
	require.Equal(t, 1, region.Length())
	assert.Equal(t, "body", goquery.NodeName(region))
}
