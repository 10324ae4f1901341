package directory_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carteira/internal/directory"
)

func TestDefaultSeed(t *testing.T) {
	records, err := directory.DefaultSeed()
	require.NoError(t, err)
	require.NotEmpty(t, records)

	var maria *directory.StudentRecord
	for i := range records {
		assert.True(t, records[i].City.IsValid(), records[i].RegistrationNumber)
		if records[i].RegistrationNumber == "101050" {
			maria = &records[i]
		}
	}
	require.NotNil(t, maria)
	assert.Equal(t, "Maria Silva", maria.FullName)
	assert.Equal(t, directory.CityUberaba, maria.City)
	assert.Equal(t, []string{"Ônibus Municipal"}, maria.TransportProviders)
}

func TestParseSeed(t *testing.T) {
	t.Run("rejects duplicate registrations", func(t *testing.T) {
		doc := `
students:
  - {registration: "101050", name: A, institution: X, city: uberaba}
  - {registration: "101050", name: B, institution: Y, city: uberaba}
`
		_, err := directory.ParseSeed(strings.NewReader(doc))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "duplicate")
	})

	t.Run("rejects unknown city", func(t *testing.T) {
		doc := `
students:
  - {registration: "101050", name: A, institution: X, city: araxa}
`
		_, err := directory.ParseSeed(strings.NewReader(doc))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown city")
	})

	t.Run("rejects unknown fields", func(t *testing.T) {
		doc := `
students:
  - {registration: "101050", name: A, institution: X, city: uberaba, email: a@b.c}
`
		_, err := directory.ParseSeed(strings.NewReader(doc))
		require.Error(t, err)
	})

	t.Run("trims keys and accepts empty documents", func(t *testing.T) {
		records, err := directory.ParseSeed(strings.NewReader(`
students:
  - {registration: " 202051 ", name: " Lucas ", institution: UFU, city: uberlandia}
`))
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "202051", records[0].RegistrationNumber)
		assert.Equal(t, "Lucas", records[0].FullName)

		records, err = directory.ParseSeed(strings.NewReader(""))
		require.NoError(t, err)
		assert.Empty(t, records)
	})
}

func TestLoadSeed(t *testing.T) {
	t.Run("empty path uses embedded seed", func(t *testing.T) {
		records, err := directory.LoadSeed("")
		require.NoError(t, err)
		assert.NotEmpty(t, records)
	})

	t.Run("reads file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "seed.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
students:
  - {registration: "303099", name: Test, institution: UFU, city: monte-carmelo}
`), 0o600))
		records, err := directory.LoadSeed(path)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, directory.CityMonteCarmelo, records[0].City)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := directory.LoadSeed(filepath.Join(t.TempDir(), "absent.yaml"))
		require.Error(t, err)
	})
}

func TestInstitutionsFor(t *testing.T) {
	list := directory.InstitutionsFor(directory.CityMonteCarmelo)
	assert.Contains(t, list, "Unifucamp")
	assert.NotContains(t, directory.InstitutionsFor(directory.CityUberlandia), "Unifucamp")
	assert.Nil(t, directory.InstitutionsFor("araxa"))

	list[0] = "mutated"
	assert.NotEqual(t, "mutated", directory.InstitutionsFor(directory.CityMonteCarmelo)[0])
}

func TestStudentRecordClone(t *testing.T) {
	rec := &directory.StudentRecord{RegistrationNumber: "1", TransportProviders: []string{"A"}}
	c := rec.Clone()
	c.TransportProviders[0] = "B"
	assert.Equal(t, "A", rec.TransportProviders[0])

	var nilRec *directory.StudentRecord
	assert.Nil(t, nilRec.Clone())
}
