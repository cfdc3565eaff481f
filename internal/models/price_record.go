package models

import (
	"strconv"

	"github.com/cockroachdb/errors"
)

// PriceRecord is one row of the historical prices CSV published by the
// Secretaría de Energía. Latitude, longitude, price and effective date are
// kept as raw text: they are parsed during aggregation so that a bad value
// can degrade to null instead of discarding the row.
type PriceRecord struct {
	StationID     int
	StationName   string
	Address       string
	Town          string
	Province      string
	Flag          string
	FlagID        int
	Latitude      string
	Longitude     string
	ProductID     int
	ProductName   string
	Price         string
	EffectiveDate string // DD/MM/YYYY HH:MM
	HourType      string
	HourTypeID    int
}

func PriceRecordFromCSV(record, headers []string) (*PriceRecord, error) {
	col := func(name string) (string, error) {
		for i, header := range headers {
			if header == name {
				if i >= len(record) {
					return "", errors.Newf("record too short for column %q", name)
				}
				return record[i], nil
			}
		}
		return "", errors.Newf("missing column %q", name)
	}

	intCol := func(name string) (int, error) {
		value, err := col(name)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(value)
		if err != nil {
			return 0, errors.Wrapf(err, "invalid value %q for column %q", value, name)
		}
		return n, nil
	}

	rec := &PriceRecord{}
	var err error

	if rec.StationID, err = intCol("idempresa"); err != nil {
		return nil, err
	}
	if rec.FlagID, err = intCol("idempresabandera"); err != nil {
		return nil, err
	}
	if rec.ProductID, err = intCol("idproducto"); err != nil {
		return nil, err
	}
	if rec.HourTypeID, err = intCol("idtipohorario"); err != nil {
		return nil, err
	}

	for name, field := range map[string]*string{
		"empresa":        &rec.StationName,
		"direccion":      &rec.Address,
		"localidad":      &rec.Town,
		"provincia":      &rec.Province,
		"empresabandera": &rec.Flag,
		"latitud":        &rec.Latitude,
		"longitud":       &rec.Longitude,
		"producto":       &rec.ProductName,
		"precio":         &rec.Price,
		"fecha_vigencia": &rec.EffectiveDate,
		"tipohorario":    &rec.HourType,
	} {
		if *field, err = col(name); err != nil {
			return nil, err
		}
	}

	return rec, nil
}
