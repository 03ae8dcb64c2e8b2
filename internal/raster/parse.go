package raster

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Grid is one decoded ESRI ASCII grid: the exchange format the fetch step
// stores band data in.
type Grid struct {
	Ncols, Nrows     int
	Xcenter, Ycenter *float64
	Xcorner, Ycorner *float64
	CellSize         float64
	NoDataValue      float64
	Data             [][]float64
}

// ParseASCIIGrid parses an ESRI ASCII grid from reader.
func ParseASCIIGrid(reader io.Reader) (Grid, error) {
	grid := Grid{}
	remainingHeaders := []string{"NCOLS", "NROWS", "XLLCENTER", "XLLCORNER", "YLLCENTER", "YLLCORNER", "CELLSIZE", "NODATA_VALUE"}
	stillIsHeader := true
	rowIndex := 0
	var data [][]float64

	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)

	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		keyword := strings.ToUpper(fields[0])

		if stillIsHeader && contains(remainingHeaders, keyword) {
			remainingHeaders = remove(remainingHeaders, keyword)

			// there can either be corner or center not both
			if keyword == "XLLCENTER" || keyword == "YLLCENTER" {
				remainingHeaders = remove(remainingHeaders, "XLLCORNER")
				remainingHeaders = remove(remainingHeaders, "YLLCORNER")
			}
			if keyword == "XLLCORNER" || keyword == "YLLCORNER" {
				remainingHeaders = remove(remainingHeaders, "XLLCENTER")
				remainingHeaders = remove(remainingHeaders, "YLLCENTER")
			}

			if err := parseHeaderLine(fields, &grid); err != nil {
				return grid, err
			}
		} else {
			if stillIsHeader {
				// NODATA_VALUE is optional, everything else must be there
				// before the first data line
				remainingHeaders = remove(remainingHeaders, "NODATA_VALUE")

				if len(remainingHeaders) > 0 {
					return grid, fmt.Errorf("band grid is missing mandatory headers: %s", strings.Join(remainingHeaders, ", "))
				}

				stillIsHeader = false

				data = make([][]float64, grid.Nrows)
			}

			if rowIndex >= grid.Nrows {
				break
			}

			row, err := parseDataLine(fields, grid.Ncols)
			if err != nil {
				return grid, err
			}

			data[rowIndex] = row
			rowIndex++
		}
	}

	if err := scanner.Err(); err != nil {
		return grid, err
	}

	if stillIsHeader {
		return grid, fmt.Errorf("band grid contains no data lines")
	}

	if rowIndex < grid.Nrows {
		return grid, fmt.Errorf("band grid has %d data rows, header says %d", rowIndex, grid.Nrows)
	}

	grid.Data = data

	return grid, nil
}

func parseHeaderLine(fields []string, grid *Grid) error {
	if len(fields) != 2 {
		return fmt.Errorf("grid header line must have exactly two fields")
	}

	switch strings.ToUpper(fields[0]) {
	case "NCOLS":
		i, err := strconv.ParseUint(fields[1], 10, 32)
		if err != nil {
			return err
		}
		if i == 0 {
			return fmt.Errorf("NCOLS must be greater than 0")
		}
		grid.Ncols = int(i)
	case "NROWS":
		i, err := strconv.ParseUint(fields[1], 10, 32)
		if err != nil {
			return err
		}
		if i == 0 {
			return fmt.Errorf("NROWS must be greater than 0")
		}
		grid.Nrows = int(i)
	case "XLLCENTER":
		f, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return err
		}
		grid.Xcenter = &f
	case "XLLCORNER":
		f, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return err
		}
		grid.Xcorner = &f
	case "YLLCENTER":
		f, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return err
		}
		grid.Ycenter = &f
	case "YLLCORNER":
		f, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return err
		}
		grid.Ycorner = &f
	case "CELLSIZE":
		f, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return err
		}
		if f <= 0.0 {
			return fmt.Errorf("CELLSIZE must be greater than 0")
		}
		grid.CellSize = f
	case "NODATA_VALUE":
		f, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return err
		}
		grid.NoDataValue = f
	default:
		return fmt.Errorf("unknown grid header keyword: %s", fields[0])
	}

	return nil
}

func parseDataLine(fields []string, cols int) ([]float64, error) {
	row := make([]float64, cols)

	if len(fields) < cols {
		return row, fmt.Errorf("band grid data row is too short: %d values, expected %d", len(fields), cols)
	}

	for i := 0; i < cols; i++ {
		f, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return row, err
		}
		row[i] = f
	}

	return row, nil
}

func contains(array []string, element string) bool {
	for _, cur := range array {
		if cur == element {
			return true
		}
	}
	return false
}

func remove(arr []string, element string) []string {
	var remaining []string

	for i := 0; i < len(arr); i++ {
		if element != arr[i] {
			remaining = append(remaining, arr[i])
		}
	}

	return remaining
}
