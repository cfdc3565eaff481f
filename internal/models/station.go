package models

// Coordinates is a possibly-incomplete lat/lng pair. A nil axis means the
// source row carried no usable value for it.
type Coordinates struct {
	Lat *float64 `json:"lat"`
	Lng *float64 `json:"lng"`
}

// Valid reports whether the pair is complete and non-zero. A half-present
// pair, or one with a zero axis, is treated as invalid and eligible for
// geocoding.
func (c Coordinates) Valid() bool {
	return c.Lat != nil && c.Lng != nil && *c.Lat != 0 && *c.Lng != 0
}

// PricePoint is one historical price observation. Price and Date are nil
// when the source value could not be parsed; a nil price still occupies its
// slot in the history.
type PricePoint struct {
	Price      *float64 `json:"price"`
	Date       *string  `json:"date"`
	HourType   string   `json:"hourType"`
	HourTypeID int      `json:"hourTypeId"`
}

type Product struct {
	ProductID   int          `json:"productId"`
	ProductName string       `json:"productName"`
	Prices      []PricePoint `json:"prices"`
}

// ProductKey identifies a product within a station. Two rows sharing an id
// but disagreeing on the name text yield two distinct products; the source
// data does this occasionally and the split is kept as-is.
type ProductKey struct {
	ID   int
	Name string
}

type Station struct {
	StationID   int
	StationName string
	Address     string
	Town        string
	Province    string
	Flag        string
	FlagID      int
	Coordinates Coordinates

	products     map[ProductKey]*Product
	productOrder []ProductKey
}

// Product returns the station's product for the given key, creating it in
// first-seen order when absent.
func (s *Station) Product(id int, name string) *Product {
	key := ProductKey{ID: id, Name: name}
	if s.products == nil {
		s.products = make(map[ProductKey]*Product)
	}
	product, ok := s.products[key]
	if !ok {
		product = &Product{ProductID: id, ProductName: name}
		s.products[key] = product
		s.productOrder = append(s.productOrder, key)
	}
	return product
}

// Products returns the station's products in first-seen order.
func (s *Station) Products() []*Product {
	products := make([]*Product, 0, len(s.productOrder))
	for _, key := range s.productOrder {
		products = append(products, s.products[key])
	}
	return products
}

// StationIndex maps station ids to stations, preserving first-seen order.
// Output order is an observable contract, so iteration is always over the
// insertion sequence rather than map order.
type StationIndex struct {
	byID  map[int]*Station
	order []int
}

func NewStationIndex() *StationIndex {
	return &StationIndex{byID: make(map[int]*Station)}
}

func (idx *StationIndex) Get(id int) (*Station, bool) {
	station, ok := idx.byID[id]
	return station, ok
}

func (idx *StationIndex) Add(station *Station) {
	if _, ok := idx.byID[station.StationID]; ok {
		return
	}
	idx.byID[station.StationID] = station
	idx.order = append(idx.order, station.StationID)
}

func (idx *StationIndex) Stations() []*Station {
	stations := make([]*Station, 0, len(idx.order))
	for _, id := range idx.order {
		stations = append(stations, idx.byID[id])
	}
	return stations
}

func (idx *StationIndex) Len() int {
	return len(idx.order)
}

// PointGeometry is a GeoJSON-style point. Coordinates are [lng, lat], with
// 0.0 standing in for an axis that was still unresolved at formatting time.
type PointGeometry struct {
	Type        string     `json:"type"`
	Coordinates [2]float64 `json:"coordinates"`
}

// StationOutput is the serialized form of a station in the output document.
type StationOutput struct {
	StationID   int           `json:"stationId"`
	StationName string        `json:"stationName"`
	Address     string        `json:"address"`
	Town        string        `json:"town"`
	Province    string        `json:"province"`
	Flag        string        `json:"flag"`
	FlagID      int           `json:"flagId"`
	Geometry    PointGeometry `json:"geometry"`
	Products    []*Product    `json:"products"`
}
