package registration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carteira/internal/directory"
	dErrors "carteira/pkg/domain-errors"
)

func TestParse(t *testing.T) {
	tests := []struct {
		raw  string
		want Number
		city directory.City
	}{
		{raw: "101050", want: "101050", city: directory.CityUberaba},
		{raw: "  202051 ", want: "202051", city: directory.CityUberlandia},
		{raw: "303051", want: "303051", city: directory.CityMonteCarmelo},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			n, city, err := Parse(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, n)
			assert.Equal(t, tt.city, city)
		})
	}
}

func TestParseRejects(t *testing.T) {
	t.Run("blank", func(t *testing.T) {
		_, _, err := Parse("   ")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidFormat))
		assert.Equal(t, MsgBlank, err.Error())
	})

	for _, raw := range []string{"401050", "10105", "1010500", "10105a", "3030511", "abc", "-101050"} {
		t.Run(raw, func(t *testing.T) {
			_, _, err := Parse(raw)
			require.Error(t, err)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidFormat))
			assert.Equal(t, MsgFormat, err.Error())
		})
	}
}

func TestTransportOptions(t *testing.T) {
	t.Run("record assignment wins", func(t *testing.T) {
		rec := &directory.StudentRecord{TransportProviders: []string{" JN Tour", "Cachoeira Turismo", "JN Tour"}}
		assert.Equal(t, []string{"JN Tour", "Cachoeira Turismo"}, TransportOptions(directory.CityMonteCarmelo, rec))
	})

	t.Run("systemic provider without assignment", func(t *testing.T) {
		assert.Equal(t, []string{"Novatur Ltda"}, TransportOptions(directory.CityMonteCarmelo, &directory.StudentRecord{}))
	})

	t.Run("generic list otherwise", func(t *testing.T) {
		opts := TransportOptions(directory.CityUberaba, nil)
		assert.Equal(t, []string{"Ônibus Municipal", "Ônibus Escolar", "Van Escolar", "Transporte Universitário"}, opts)

		opts[0] = "mutated"
		assert.Equal(t, "Ônibus Municipal", TransportOptions(directory.CityUberaba, nil)[0])
	})

	t.Run("blank assignment falls back", func(t *testing.T) {
		rec := &directory.StudentRecord{TransportProviders: []string{"  "}}
		assert.Len(t, TransportOptions(directory.CityUberlandia, rec), 4)
	})
}
