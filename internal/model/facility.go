// Package model declares the facility schema shared by the store,
// repository and handlers. A facility ("MLS point") is one physical
// storage/logistics site; every field is surfaced as a string because the
// backing table mixes free-text, numeric and flag columns and the UI treats
// them all as text.
package model

import "strings"

// Record holds one facility row as a column -> value map. Missing columns
// read as "" through Get, never null, so consumers can render any declared
// field without existence checks.
type Record map[string]string

// Get returns the value for a column or "" when absent.
func (r Record) Get(col string) string {
	if r == nil {
		return ""
	}
	return r[col]
}

// Clone returns an independent copy of the record. The store swaps whole
// records on update, so handlers always work on copies.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// CodeColumn is the unique, stable identifier column of the mls_points table.
const CodeColumn = "mls_point_code"

// Schema is the declared allow-list of facility columns. Update requests
// may only touch columns named here; anything else is dropped before SQL is
// built. The order matches the table definition and is also the projection
// order for full-record responses.
var Schema = []string{
	"mls_point_code",
	"mls_point_name",
	"district_name",
	"district_code",
	"mandal_name",
	"mandal_code",
	"mls_point_latitude",
	"mls_point_longitude",
	"mls_point_address",
	"mls_point_incharge_cfms_id",
	"mls_point_incharge_name",
	"designation",
	"aadhaar_number",
	"phone_number",
	"deo_cfms_id",
	"deo_name",
	"deo_aadhaar_number",
	"deo_phone_number",
	"storage_capacity_mts",
	"godown_area_sqft",
	"mls_point_ownership",
	"rented_type",
	"weighbridge_available",
	"cc_cameras_installed",
	"cameras_working",
	"camera_vendor",
	"hamalies_working",
	"stage2_vehicles_registered",
	"gps_installed_on_all_vehicles",
	"nominee_incharge_name",
	"nominee_phone_number",
	"nominee_incharge_cfms_id",
}

var schemaSet = func() map[string]bool {
	m := make(map[string]bool, len(Schema))
	for _, c := range Schema {
		m[c] = true
	}
	return m
}()

// KnownColumn reports whether col is part of the declared schema.
func KnownColumn(col string) bool { return schemaSet[col] }

// FilterToSchema returns only the entries of fields whose keys are declared
// columns, plus the list of keys that were dropped. The code column is
// never patchable; it identifies the row.
func FilterToSchema(fields map[string]string) (map[string]string, []string) {
	kept := make(map[string]string, len(fields))
	var dropped []string
	for k, v := range fields {
		key := NormalizeColumn(k)
		if key == CodeColumn || !schemaSet[key] {
			dropped = append(dropped, k)
			continue
		}
		kept[key] = v
	}
	return kept, dropped
}

// NormalizeColumn lowercases a column identifier, turns spaces into
// underscores and strips dots, matching how the table's headers were
// normalized when the dataset was first imported.
func NormalizeColumn(col string) string {
	col = strings.ToLower(col)
	col = strings.ReplaceAll(col, " ", "_")
	col = strings.ReplaceAll(col, ".", "")
	return col
}

// Projection column sets served by the query endpoints. Columns missing
// from the loaded schema are silently omitted from responses rather than
// erred, so the dashboard keeps working against older table snapshots.

// FilteredDataColumns is the projection for the district/mandal table view.
var FilteredDataColumns = []string{
	"mls_point_code",
	"mls_point_name",
	"mandal_name",
	"district_name",
	"mls_point_incharge_name",
	"storage_capacity_mts",
	"phone_number",
}

// MapPointColumns is the projection for the district+mandal map pins.
var MapPointColumns = []string{
	"mls_point_code",
	"mls_point_name",
	"district_name",
	"mandal_name",
	"mls_point_latitude",
	"mls_point_longitude",
	"mls_point_incharge_name",
	"storage_capacity_mts",
	"phone_number",
}

// SearchColumns is the projection for code substring search results.
var SearchColumns = []string{
	"mls_point_code",
	"mls_point_name",
	"district_name",
	"district_code",
	"mandal_name",
	"mandal_code",
	"mls_point_latitude",
	"mls_point_longitude",
	"mls_point_incharge_name",
	"phone_number",
	"deo_name",
	"deo_phone_number",
	"storage_capacity_mts",
}

// ViewDetailKeys are the fields the detail view must always carry, empty
// string when unset. Aadhaar numbers are deliberately absent here; they
// only appear on the edit payload.
var ViewDetailKeys = []string{
	"mls_point_code", "mls_point_name", "district_name", "district_code",
	"mandal_code", "mandal_name", "mls_point_address", "mls_point_latitude",
	"mls_point_longitude", "mls_point_incharge_cfms_id", "mls_point_incharge_name",
	"designation", "phone_number", "deo_cfms_id", "deo_name",
	"deo_phone_number", "storage_capacity_mts", "godown_area_sqft",
	"mls_point_ownership", "weighbridge_available", "cc_cameras_installed",
	"hamalies_working", "stage2_vehicles_registered", "gps_installed_on_all_vehicles",
	"camera_vendor",
}

// EditDetailKeys are the fields the edit form must always carry, including
// the sensitive Aadhaar and nominee columns.
var EditDetailKeys = []string{
	"mls_point_code", "mls_point_name", "district_name", "district_code",
	"mandal_code", "mandal_name", "mls_point_address", "mls_point_latitude",
	"mls_point_longitude", "mls_point_incharge_cfms_id", "mls_point_incharge_name",
	"designation", "phone_number", "aadhaar_number", "deo_cfms_id", "deo_name",
	"deo_aadhaar_number", "deo_phone_number", "storage_capacity_mts", "godown_area_sqft",
	"mls_point_ownership", "rented_type", "weighbridge_available", "cc_cameras_installed",
	"cameras_working", "camera_vendor", "hamalies_working", "stage2_vehicles_registered",
	"gps_installed_on_all_vehicles", "nominee_incharge_name", "nominee_phone_number",
	"nominee_incharge_cfms_id",
}
