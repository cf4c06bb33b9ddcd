package model

// Country is a row of the `country` table. Countries are only ever read by
// the application; the setup scripts create them.
//
// Fields:
//  ISO  – two-letter code, primary key.
//  Name – display name shown in dropdowns and reports.
type Country struct {
	ISO  string `json:"iso"`          // country.iso
	Name string `json:"country_name"` // country.country_name
}
