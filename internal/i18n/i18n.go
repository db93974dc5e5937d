// Package i18n provides the display labels of categories and profile enums
// in the supported languages.
package i18n

import (
	"github.com/yusufkecer/calorist-backend/internal/domain"
	"golang.org/x/text/language"
)

type Language string

const (
	Turkish Language = "tr"
	English Language = "en"
)

// Order matches the matcher's tag list.
var languages = []Language{Turkish, English}

var matcher = language.NewMatcher([]language.Tag{language.Turkish, language.English})

// Parse reports whether s names a supported language.
func Parse(s string) (Language, bool) {
	switch l := Language(s); l {
	case Turkish, English:
		return l, true
	}
	return "", false
}

// Negotiate picks the best supported language for an Accept-Language header
// value, or fallback when nothing matches.
func Negotiate(acceptLanguage string, fallback Language) Language {
	if acceptLanguage == "" {
		return fallback
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return fallback
	}
	_, idx, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return fallback
	}
	return languages[idx]
}

type labels map[Language]string

func (l labels) in(lang Language) string {
	if s, ok := l[lang]; ok {
		return s
	}
	return l[English]
}

var bmiCategoryLabels = map[domain.BMICategory]labels{
	domain.BMIUnderweight: {Turkish: "Zayıf", English: "Underweight"},
	domain.BMINormal:      {Turkish: "Normal", English: "Normal"},
	domain.BMIOverweight:  {Turkish: "Fazla Kilolu", English: "Overweight"},
	domain.BMIObese1:      {Turkish: "Obez (1. Derece)", English: "Obese (Class I)"},
	domain.BMIObese2:      {Turkish: "Obez (2. Derece)", English: "Obese (Class II)"},
	domain.BMIObese3:      {Turkish: "Aşırı Obez (3. Derece)", English: "Obese (Class III)"},
}

var riskLabels = map[domain.RiskLevel]labels{
	domain.RiskLow:      {Turkish: "Düşük Risk", English: "Low Risk"},
	domain.RiskModerate: {Turkish: "Orta Risk", English: "Moderate Risk"},
	domain.RiskHigh:     {Turkish: "Yüksek Risk", English: "High Risk"},
}

var genderLabels = map[domain.Gender]labels{
	domain.GenderMale:   {Turkish: "Erkek", English: "Male"},
	domain.GenderFemale: {Turkish: "Kadın", English: "Female"},
}

var activityLabels = map[domain.ActivityLevel]labels{
	domain.ActivitySedentary:        {Turkish: "Hareketsiz", English: "Sedentary"},
	domain.ActivityLightlyActive:    {Turkish: "Az Hareketli", English: "Lightly Active"},
	domain.ActivityModeratelyActive: {Turkish: "Orta Hareketli", English: "Moderately Active"},
	domain.ActivityVeryActive:       {Turkish: "Çok Hareketli", English: "Very Active"},
	domain.ActivityExtremelyActive:  {Turkish: "Aşırı Hareketli", English: "Extremely Active"},
}

var goalLabels = map[domain.Goal]labels{
	domain.GoalLoseWeight:     {Turkish: "Kilo Ver", English: "Lose Weight"},
	domain.GoalMaintainWeight: {Turkish: "Kilo Koru", English: "Maintain Weight"},
	domain.GoalGainWeight:     {Turkish: "Kilo Al", English: "Gain Weight"},
}

// BMICategory returns "" for an empty or unknown category.
func BMICategory(lang Language, c domain.BMICategory) string {
	return bmiCategoryLabels[c].in(lang)
}

func Risk(lang Language, r domain.RiskLevel) string {
	return riskLabels[r].in(lang)
}

func Gender(lang Language, g domain.Gender) string {
	return genderLabels[g].in(lang)
}

func ActivityLevel(lang Language, a domain.ActivityLevel) string {
	return activityLabels[a].in(lang)
}

func Goal(lang Language, g domain.Goal) string {
	return goalLabels[g].in(lang)
}
