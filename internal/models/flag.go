package models

import "github.com/cockroachdb/errors"

type Flag struct {
	Name    string
	Url     string
	Favicon *string
}

func FlagFromCSV(record, headers []string) (*Flag, error) {
	if len(record) < 2 {
		return nil, errors.Newf("flag record must have at least 2 fields, got %d", len(record))
	}
	flag := &Flag{
		Name: record[0],
		Url:  record[1],
	}
	if len(record) == 3 && record[2] != "" {
		flag.Favicon = &record[2]
	}
	return flag, nil
}
