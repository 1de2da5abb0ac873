package classify_test

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verge88/api-npa3/internal/classify"
	"github.com/verge88/api-npa3/internal/domain"
)

func TestDocumentType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		href string
		want domain.DocumentType
	}{
		{"/mega_doc/fire/standart/standart_12.html", domain.TypeStandard},
		{"/mega_doc/norm/gost-r-12345.html", domain.TypeStandard},
		{"/mega_doc/fire/federalnyj-zakon/federalnyj-zakon_3.html", domain.TypeFederalLaw},
		{"/mega_doc/fire/prikaz/prikaz_5.html", domain.TypeOrder},
		{"/mega_doc/fire/postanovlenie/postanovlenie_1.html", domain.TypeResolution},
		{"/mega_doc/norm/snip/snip-21-01.html", domain.TypeBuildNorm},
		{"/mega_doc/norm/sp/sp-1-13130.html", domain.TypePractice},
		{"/mega_doc/other/letter_7.html", domain.TypeGeneric},
		{"/MEGA_DOC/FIRE/PRIKAZ/X.HTML", domain.TypeOrder},
		{"", domain.TypeGeneric},
	}

	for _, tt := range tests {
		t.Run(tt.href, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, classify.DocumentType(tt.href))
		})
	}
}

func TestDocumentType_CollisionResolvedByPriority(t *testing.T) {
	t.Parallel()

	// Matches both the standard and practice rules; the earlier one wins.
	assert.Equal(t, domain.TypeStandard, classify.DocumentType("/sp/standart/x.html"))
	// "/snip" is checked before the "/sp" prefix.
	assert.Equal(t, domain.TypeBuildNorm, classify.DocumentType("/snip/sp/x.html"))
}

func TestTypeRules_IsCopy(t *testing.T) {
	t.Parallel()

	rules := classify.TypeRules()
	require.Len(t, rules, 6)
	assert.Equal(t, domain.TypeStandard, rules[0].Type)
	assert.Equal(t, domain.TypePractice, rules[len(rules)-1].Type)

	rules[0].Type = domain.TypeGeneric
	assert.Equal(t, domain.TypeStandard, classify.TypeRules()[0].Type)
}

func TestDocumentNumber(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		title string
		href  string
		want  string
	}{
		{"numero sign", "Приказ МЧС № 123/45", "/prikaz/x.html", "123/45"},
		{"year pair", "Документ 12345-2020", "/doc.html", "12345-2020"},
		{"gost r", "ГОСТ Р 12345-67 Пожарная техника", "/standart/x.html", "12345-67"},
		{"practice code", "СП 1.13130 Системы", "/sp/x.html", "1.13130"},
		{"construction norm", "СНиП 21-01-97", "/snip/x.html", "21-01"},
		{"dotted triple", "Правила 1.2.3", "/doc.html", "1.2.3"},
		{"from href", "Без номера", "/mega_doc/doc-77-8.html", "77-8"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := classify.DocumentNumber(tt.title, tt.href)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, *got)
		})
	}
}

func TestDocumentNumber_Absent(t *testing.T) {
	t.Parallel()

	assert.Nil(t, classify.DocumentNumber("Общие положения", "/mega_doc/fire/index.html"))
	assert.Nil(t, classify.DocumentNumber("", ""))
}

func TestFirstMatch_OrderMatters(t *testing.T) {
	t.Parallel()

	patterns := []*regexp.Regexp{regexp.MustCompile(`b(\d)`), regexp.MustCompile(`a(\d)`)}
	got := classify.FirstMatch(patterns, "a1 b2")
	require.NotNil(t, got)
	assert.Equal(t, "2", *got)
}
