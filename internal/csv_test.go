package internal

import (
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/precios-ar/precios-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `idempresa,empresa,direccion,localidad,provincia,empresabandera,idempresabandera,latitud,longitud,idproducto,producto,precio,fecha_vigencia,tipohorario,idtipohorario
1001,ESTACION UNO,AV. SIEMPRE VIVA 742,SPRINGFIELD,BUENOS AIRES,YPF,1,-34.6,-58.4,2,Nafta (súper) entre 92 y 95 Ron,315.5,01/06/2023 10:00,Diurno,2
1002,ESTACION DOS,CALLE FALSA 123,CORDOBA,CORDOBA,SHELL C.A.P.S.A.,2,,,3,Gas Oil Grado 2,290.9,02/06/2023 09:00,Diurno,2
`

func TestParseCSV(t *testing.T) {

	t.Run("Parses records via the header row", func(t *testing.T) {
		var records []*models.PriceRecord
		for record := range ParseCSV(strings.NewReader(sampleCSV), true, models.PriceRecordFromCSV) {
			require.NoError(t, record.Error)
			records = append(records, record.Value)
		}

		require.Len(t, records, 2)
		assert.Equal(t, 1001, records[0].StationID)
		assert.Equal(t, "Nafta (súper) entre 92 y 95 Ron", records[0].ProductName)
		assert.Equal(t, "01/06/2023 10:00", records[0].EffectiveDate)
		assert.Equal(t, "", records[1].Latitude)
		assert.Equal(t, 2, records[1].FlagID)
	})

	t.Run("Missing column is surfaced per record", func(t *testing.T) {
		input := "idempresa,empresa\n1001,ESTACION UNO\n"

		var errs []error
		for record := range ParseCSV(strings.NewReader(input), true, models.PriceRecordFromCSV) {
			errs = append(errs, record.Error)
		}

		require.Len(t, errs, 1)
		require.Error(t, errs[0])
		assert.Contains(t, errs[0].Error(), "missing column")
	})

	t.Run("Header failure is marked as source-level", func(t *testing.T) {
		var records []Record[*models.PriceRecord]
		for record := range ParseCSV(strings.NewReader(""), true, models.PriceRecordFromCSV) {
			records = append(records, record)
		}

		require.Len(t, records, 1)
		require.Error(t, records[0].Error)
		assert.True(t, errors.Is(records[0].Error, ErrMalformedSource))
	})

	t.Run("Row-level failure is not marked as source-level", func(t *testing.T) {
		input := "idempresa,empresa\n1001,ESTACION UNO\n"

		for record := range ParseCSV(strings.NewReader(input), true, models.PriceRecordFromCSV) {
			require.Error(t, record.Error)
			assert.False(t, errors.Is(record.Error, ErrMalformedSource))
		}
	})

	t.Run("Bad record does not stop the stream", func(t *testing.T) {
		input := sampleCSV + "not-a-number,X,Y,Z,W,V,1,,,2,Nafta,100,01/06/2023 10:00,Diurno,2\n"

		good, bad := 0, 0
		for record := range ParseCSV(strings.NewReader(input), true, models.PriceRecordFromCSV) {
			if record.Error != nil {
				bad++
				continue
			}
			good++
		}

		assert.Equal(t, 2, good)
		assert.Equal(t, 1, bad)
	})
}
