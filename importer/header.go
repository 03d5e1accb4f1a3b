// ABOUTME: Header row detection for schema-less spreadsheets
// ABOUTME: Scores candidate rows by how label-like their cells classify
package importer

import "strconv"

// maxHeaderScan bounds how many non-empty rows are considered as header
// candidates before giving up.
const maxHeaderScan = 20

// headerScoreFloor is the minimum winning score for a candidate to be
// accepted as the header row.
const headerScoreFloor = 5.0

// LocateHeader scans the leading rows for the one most likely holding column
// labels. Each candidate row is scored by classifying its cells: a name match
// weighs 3, company and contact-date matches weigh 2, email, position, phone
// and location weigh 1, and any cell that resembles a generic header token
// adds 0.5. A row only qualifies when it has a name match and either a
// company/date match or a total score above 2. The highest score wins, with
// earlier rows winning ties. When no candidate clears the floor the first
// non-empty row is used, so files without a real header still import.
//
// The returned bool reports whether a genuine header was detected (false
// means the fallback row was chosen).
func LocateHeader(rows [][]string) (int, bool) {
	bestIndex := -1
	bestScore := 0.0
	scanned := 0

	for i, row := range rows {
		if isBlankRow(row) {
			continue
		}
		if scanned >= maxHeaderScan {
			break
		}
		scanned++

		score, hasName, hasAnchor := scoreHeaderRow(row)
		if !hasName || (!hasAnchor && score <= 2) {
			continue
		}
		if score > bestScore {
			bestScore = score
			bestIndex = i
		}
	}

	if bestIndex >= 0 && bestScore > headerScoreFloor {
		return bestIndex, true
	}

	for i, row := range rows {
		if !isBlankRow(row) {
			return i, false
		}
	}
	return -1, false
}

// scoreHeaderRow computes the header likelihood score for one row. hasAnchor
// reports a company or contact-date match, which qualifies a row on its own.
func scoreHeaderRow(row []string) (score float64, hasName, hasAnchor bool) {
	for _, cell := range row {
		field, normalized := Classify(cell)
		switch field {
		case FieldName:
			score += 3
			hasName = true
		case FieldCompany, FieldContactDate:
			score += 2
			hasAnchor = true
		case FieldEmail, FieldPosition, FieldPhone, FieldLocation:
			score++
		}
		if matchesCommonHeader(normalized) {
			score += 0.5
		}
	}
	return score, hasName, hasAnchor
}

// MapColumns derives the column-to-field mapping from the chosen header row.
// Unrecognized labels keep their normalized text so their cells survive as
// additional data. Duplicate field claims keep the first column; later
// columns with the same classification fall back to additional data under
// their own label.
func MapColumns(header []string) ColumnMapping {
	mapping := ColumnMapping{
		Fields: make([]Field, len(header)),
		Labels: make([]string, len(header)),
	}
	claimed := make(map[Field]bool)

	for i, cell := range header {
		field, normalized := Classify(cell)
		if field != FieldUnknown && claimed[field] {
			field = FieldUnknown
		}
		if field != FieldUnknown {
			claimed[field] = true
		}
		mapping.Fields[i] = field
		if normalized == "" {
			normalized = columnLabel(i)
		}
		mapping.Labels[i] = normalized
	}

	return mapping
}

// ColumnMapping records, per column index, the semantic field and the
// normalized header label used as the additional-data key for unknowns.
type ColumnMapping struct {
	Fields []Field
	Labels []string
}

// FieldColumn returns the index of the first column mapped to field, or -1.
func (m ColumnMapping) FieldColumn(field Field) int {
	for i, f := range m.Fields {
		if f == field {
			return i
		}
	}
	return -1
}

// columnLabel names columns that have no header cell at all.
func columnLabel(index int) string {
	return "Column" + strconv.Itoa(index+1)
}
