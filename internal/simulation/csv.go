package simulation

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"
)

func WriteHourlyCSV(path string, rows []HourlyRow) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"index",
		"timestamp_utc",
		"zenith_deg",
		"azimuth_deg",
		"poa_w_m2",
		"cell_temp_c",
		"dc_power_w",
		"net_dc_power_w",
		"ac_power_w",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range rows {
		row := []string{
			strconv.Itoa(r.Index),
			r.Timestamp.UTC().Format(time.RFC3339),
			fmtFloat(r.ZenithDeg),
			fmtFloat(r.AzimuthDeg),
			fmtFloat(r.POAWm2),
			fmtFloat(r.CellTempC),
			fmtFloat(r.DCPowerW),
			fmtFloat(r.NetDCPowerW),
			fmtFloat(r.ACPowerW),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 4, 64)
}
