package acronym

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDerive(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "simple act", in: "Arms Offences Act 2006", want: "AOA2006"},
		{name: "leading stop word", in: "The Public Order Act 1998", want: "POA1998"},
		{name: "inner stop words", in: "Administration of Justice (Protection) Act 2016", want: "AJ(A2016"},
		{name: "mixed case stop words", in: "Sale OF Goods AND Services Act 1979", want: "SGSA1979"},
		{name: "no year", in: "Penal Code", want: "PC"},
		{name: "surrounding whitespace", in: "  Arms Offences Act 2006 \n", want: "AOA2006"},
		{name: "lower case words", in: "interpretation act 1965", want: "IA1965"},
		{name: "year only", in: "2006", want: "2006"},
		{name: "empty", in: "", want: ""},
		{name: "only stop words", in: "of the and", want: ""},
		{name: "year glued to word", in: "Budget2020", want: "B2020"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Derive(tt.in))
		})
	}
}

func TestDerive_NoYearHasNoDigits(t *testing.T) {
	got := Derive("Criminal Procedure Code")
	assert.Equal(t, "CPC", got)
	assert.NotRegexp(t, `\d`, got)
}

func TestYear(t *testing.T) {
	year, ok := Year("Arms Offences Act 2006 ")
	assert.True(t, ok)
	assert.Equal(t, "2006", year)

	_, ok = Year("Arms Offences Act 2006 (Amendment)")
	assert.False(t, ok)

	assert.True(t, HasYear("Companies Act 1967"))
	assert.False(t, HasYear("Companies Act 67"))
}

func TestDetailURL(t *testing.T) {
	got := DetailURL("https://sso.agc.gov.sg", Derive("Arms Offences Act 2006"))
	assert.Equal(t, "https://sso.agc.gov.sg/Act/AOA2006?WholeDoc=1", got)

	assert.Equal(t, "http://127.0.0.1:8080/Act/PC?WholeDoc=1", DetailURL("http://127.0.0.1:8080/", "PC"))
}

func TestDetailURL_KeepsPunctuation(t *testing.T) {
	code := Derive("Administration of Justice (Protection) Act 2016")
	assert.Equal(t, "AJ(A2016", code)
	assert.Equal(t, "https://sso.agc.gov.sg/Act/AJ(A2016?WholeDoc=1", DetailURL("https://sso.agc.gov.sg", code))
	assert.Equal(t, "https://sso.agc.gov.sg/Act/AJ(A2016?WholeDoc=1&ProvIds=pr1-#pr1-",
		ProvisionURL("https://sso.agc.gov.sg", code, "pr1-"))
}

func TestProvisionURL(t *testing.T) {
	got := ProvisionURL("https://sso.agc.gov.sg", FixedProvisionAcronym, "pr12A-")
	assert.Equal(t, "https://sso.agc.gov.sg/Act/AA2004?WholeDoc=1&ProvIds=pr12A-#pr12A-", got)
}
