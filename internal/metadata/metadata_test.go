package metadata_test

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verge88/api-npa3/internal/domain"
	"github.com/verge88/api-npa3/internal/metadata"
)

func TestExtract_Date(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want string
	}{
		{"from prefix wins", "Редакция 01.01.2020. Приказ от 05.03.2021 № 12", "05.03.2021"},
		{"plain dotted", "Введен 1.7.2015 впервые", "1.7.2015"},
		{"iso", "Опубликовано 2019-11-30", "2019-11-30"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			md := metadata.Extract("", tt.text)
			require.NotNil(t, md.Date)
			assert.Equal(t, tt.want, *md.Date)
		})
	}
}

func TestExtract_Number(t *testing.T) {
	t.Parallel()

	md := metadata.Extract("Приказ МЧС России", "Приказ от 05.03.2021 № 123-р")
	require.NotNil(t, md.Number)
	assert.Equal(t, "123-", *md.Number)

	md = metadata.Extract("ГОСТ Р 53325-2012 Техника пожарная", "Текст")
	require.NotNil(t, md.Number)
	assert.Equal(t, "53325-2012", *md.Number)

	md = metadata.Extract("Без номера", "Общие положения")
	assert.Nil(t, md.Number)
	assert.Nil(t, md.Date)
}

func TestExtract_NormalizesText(t *testing.T) {
	t.Parallel()

	md := metadata.Extract("", "Утвержден от\n\t 05.03.2021")
	require.NotNil(t, md.Date)
	assert.Equal(t, "05.03.2021", *md.Date)
}

func TestStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text string
		want domain.LegalStatus
	}{
		{"Документ ДЕЙСТВУЕТ", domain.StatusActive},
		{"Стандарт отменен", domain.StatusInactive},
		{"Утратил силу с 2020 года", domain.StatusInactive},
		{"Действует. Ранее отменен пункт 3", domain.StatusActive},
		{"Не действует", domain.StatusActive},
		{"Информация отсутствует", domain.StatusUndetermined},
		{"", domain.StatusUndetermined},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, metadata.Status(tt.text), tt.text)
	}
}

func TestTitle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		markup string
		want   string
	}{
		{"h1", `<html><head><title>Сайт</title></head><body><h1> ГОСТ Р 12345-67 </h1></body></html>`, "ГОСТ Р 12345-67"},
		{"short h1 falls through", `<html><head><title>Заголовок страницы</title></head><body><h1>ГОСТ</h1></body></html>`, "Заголовок страницы"},
		{"only first h1 considered", `<body><h1>Кратк</h1><h1>Длинный заголовок</h1><div class="doc-title">Название документа</div></body>`, "Название документа"},
		{"untitled", `<body><p>Текст</p></body>`, metadata.UntitledDocument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			doc, err := goquery.NewDocumentFromReader(strings.NewReader(tt.markup))
			require.NoError(t, err)
			assert.Equal(t, tt.want, metadata.Title(doc))
		})
	}
}
