package i18n

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yusufkecer/calorist-backend/internal/domain"
)

func TestNegotiate(t *testing.T) {
	tests := []struct {
		header   string
		fallback Language
		want     Language
	}{
		{"", Turkish, Turkish},
		{"", English, English},
		{"en-US,en;q=0.9", Turkish, English},
		{"tr-TR", English, Turkish},
		{"de-DE,tr;q=0.5", English, Turkish},
		{"de-DE", English, English},
		{"ja", Turkish, Turkish},
		{"not a header;;", English, English},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			require.Equal(t, tt.want, Negotiate(tt.header, tt.fallback))
		})
	}
}

func TestParse(t *testing.T) {
	l, ok := Parse("en")
	require.True(t, ok)
	require.Equal(t, English, l)

	_, ok = Parse("fr")
	require.False(t, ok)
}

func TestLabels(t *testing.T) {
	require.Equal(t, "Fazla Kilolu", BMICategory(Turkish, domain.BMIOverweight))
	require.Equal(t, "Overweight", BMICategory(English, domain.BMIOverweight))
	require.Equal(t, "", BMICategory(English, ""))
	require.Equal(t, "Orta Risk", Risk(Turkish, domain.RiskModerate))
	require.Equal(t, "High Risk", Risk(English, domain.RiskHigh))
	require.Equal(t, "Kadın", Gender(Turkish, domain.GenderFemale))
	require.Equal(t, "Very Active", ActivityLevel(English, domain.ActivityVeryActive))
	require.Equal(t, "Kilo Koru", Goal(Turkish, domain.GoalMaintainWeight))
	require.Equal(t, "Lose Weight", Goal("xx", domain.GoalLoseWeight))
}

func TestEveryValueHasLabels(t *testing.T) {
	for _, c := range []domain.BMICategory{
		domain.BMIUnderweight, domain.BMINormal, domain.BMIOverweight,
		domain.BMIObese1, domain.BMIObese2, domain.BMIObese3,
	} {
		for _, lang := range languages {
			require.NotEmpty(t, BMICategory(lang, c), "%s/%s", lang, c)
		}
	}
	for _, a := range domain.ActivityLevels {
		for _, lang := range languages {
			require.NotEmpty(t, ActivityLevel(lang, a), "%s/%s", lang, a)
		}
	}
}
