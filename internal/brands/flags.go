package brands

import (
	_ "embed"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/precios-ar/precios-api/internal"
	"github.com/precios-ar/precios-api/internal/models"
)

//go:embed flags.csv
var flagsCSV string

func GetFlagsList() ([]*models.Flag, error) {
	arr := make([]*models.Flag, 0, 20)
	reader := strings.NewReader(flagsCSV)

	for record := range internal.ParseCSV(reader, false, models.FlagFromCSV) {
		if record.Error != nil {
			return nil, errors.Wrap(record.Error, "failed to load flag organisations")
		}
		arr = append(arr, record.Value)
	}

	return arr, nil
}

func GetFlagsMap() (Flags, error) {
	flags, err := GetFlagsList()
	if err != nil {
		return nil, err
	}

	m := make(map[string]*models.Flag, len(flags))
	for _, record := range flags {
		if _, ok := m[record.Name]; ok {
			return nil, errors.Newf("duplicate key detected: %s", record.Name)
		}
		m[record.Name] = record
	}

	return m, nil
}

type Flags map[string]*models.Flag
