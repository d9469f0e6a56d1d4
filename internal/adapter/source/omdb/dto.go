package omdb

// TitleResponse is the body of a "?t=" title lookup.
// Absent values are reported as "N/A".
type TitleResponse struct {
	Title      string `json:"Title"`
	Year       string `json:"Year"` // "2010", "2010–2013", "2019–"
	Rated      string `json:"Rated"`
	Released   string `json:"Released"`
	Runtime    string `json:"Runtime"`
	Genre      string `json:"Genre"`
	Director   string `json:"Director"`
	Plot       string `json:"Plot"`
	Poster     string `json:"Poster"`
	IMDBRating string `json:"imdbRating"`
	IMDBID     string `json:"imdbID"`
	Type       string `json:"Type"`
	Response   string `json:"Response"` // "True" or "False"
	Error      string `json:"Error"`    // Set when Response is "False"
}

// OK reports whether the service found a match
func (r TitleResponse) OK() bool {
	return r.Response == "True"
}
