package geo

import "math"

// EarthRadiusKm радиус Земли для расчета расстояний по большой окружности.
const EarthRadiusKm = 6371.0

// HaversineKm возвращает расстояние между двумя точками (lat/lng в градусах)
// в километрах по формуле гаверсинуса.
func HaversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLng := toRadians(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusKm * c
}

// HaversineMeters то же что HaversineKm, но в метрах.
func HaversineMeters(lat1, lng1, lat2, lng2 float64) float64 {
	return HaversineKm(lat1, lng1, lat2, lng2) * 1000
}

// PathDistanceKm суммирует попарные расстояния по упорядоченному списку точек.
// Меньше двух точек — 0.
func PathDistanceKm(points [][2]float64) float64 {
	if len(points) < 2 {
		return 0
	}

	var total float64
	for i := 1; i < len(points); i++ {
		total += HaversineKm(points[i-1][0], points[i-1][1], points[i][0], points[i][1])
	}
	return total
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
