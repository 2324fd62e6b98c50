// Package domain models the NYPD shooting-incident dataset and the
// transformations behind the incident report.
//
// # Data Source
//
// Incidents come from the NYC Open Data "NYPD Shooting Incident Data
// (Historic)" CSV export at
// https://data.cityofnewyork.us/api/views/833y-fsy8/rows.csv. One row is one
// reported shooting incident. The loader fetches the whole file once per run.
//
// # Dataset Conventions
//
// Date format:
//
//	OCCUR_DATE is month/day/year, e.g. "01/27/2006" or "1/27/2006".
//	Unparseable dates become the zero time.Time; the row is kept.
//
// Time format:
//
//	OCCUR_TIME is 24-hour "HH:MM:SS", e.g. "21:30:00". "HH:MM" is accepted.
//	Blank or unparseable times exclude the row from the time-of-day counts only.
//
// Perpetrator age group:
//
//	PERP_AGE_GROUP is expected to be one of "<18", "18-24", "25-44", "45-64",
//	"65+". The export also carries blanks, "UNKNOWN", "(null)", and numeric
//	garbage such as "1020", "224" and "940". See [AgeGroupDenylist].
//
// Dropped columns:
//
//	Jurisdiction and coordinate columns are removed by [Clean]; see
//	[DroppedColumns].
//
// # Time-of-day buckets
//
// Four half-open intervals partition the day:
//
//	[00:00, 06:00) late-night | [06:00, 12:00) morning
//	[12:00, 18:00) afternoon  | [18:00, 24:00) evening
//
// Reports list them in that order, never by count.
//
// # Trend model
//
// Filtered age-group counts are regressed on an alphabetical ordinal encoding
// of the labels. The fit is descriptive only; see [FitTrend].
package domain
