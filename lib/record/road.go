package record

// Road connects two towns of a country. Roads carry no referential integrity
// beyond the country id, which is used to filter them.
type Road struct {
	Country  int16 `json:"country" yaml:"country"`
	TownA    int16 `json:"townA" yaml:"townA"`
	TownB    int16 `json:"townB" yaml:"townB"`
	Distance int16 `json:"distance" yaml:"distance"`
}

// IDNameMap maps the id of a country or town to its name.
// The order of the entries is not defined.
type IDNameMap map[int16]string
