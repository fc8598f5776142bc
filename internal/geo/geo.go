package geo

import "math"

// Radius of earth in miles.
const earthRadiusMiles = 3956

// Miles computes the haversine great-circle distance in miles between two
// points given in decimal degrees, rounded to two decimal places. No domain
// validation is performed; out-of-range inputs still yield a distance.
func Miles(lon1, lat1, lon2, lat2 float64) float64 {
	rlon1 := radians(lon1)
	rlat1 := radians(lat1)
	rlon2 := radians(lon2)
	rlat2 := radians(lat2)

	dlon := rlon2 - rlon1
	dlat := rlat2 - rlat1

	a := math.Pow(math.Sin(dlat/2), 2) + math.Cos(rlat1)*math.Cos(rlat2)*math.Pow(math.Sin(dlon/2), 2)
	c := 2 * math.Asin(math.Sqrt(a))

	return round2(earthRadiusMiles * c)
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }

func round2(v float64) float64 { return math.Round(v*100) / 100 }
