package common

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"cfms/src/db"
	"cfms/src/lib"
	"cfms/src/models"
	"cfms/src/types"
)

type ZoneOccupancy struct {
	ZoneID        uint    `json:"zone_id"`
	Name          string  `json:"name"`
	Capacity      int64   `json:"capacity"`
	Occupied      int64   `json:"occupied"`
	Available     int64   `json:"available"`
	Maintenance   int64   `json:"maintenance"`
	OccupancyRate float64 `json:"occupancyRate"`
}

type OccupancyReport struct {
	Totals ZoneOccupancy   `json:"totals"`
	ByZone []ZoneOccupancy `json:"byZone"`
}

const occupancyCacheKey = "spots:metrics"

// GetOccupancyReport aggregates spot status per zone. Results are cached
// briefly in redis since dashboards poll this endpoint.
func GetOccupancyReport() (*OccupancyReport, error) {
	rd := lib.GetRedisClient()
	if rd != nil {
		cached, err := rd.Get(context.Background(), occupancyCacheKey).Result()
		if err == nil && cached != "" {
			var report OccupancyReport
			if err := json.Unmarshal([]byte(cached), &report); err == nil {
				return &report, nil
			}
		}
	}

	d := db.GetDb()
	var rows []struct {
		ZoneID uint
		Name   string
		Status types.SpotStatus
		Total  int64
	}
	if err := d.
		Model(&models.ParkingSpot{}).
		Select("parking_spots.zone_id, parking_zones.name, parking_spots.status, count(*) as total").
		Joins("JOIN parking_zones ON parking_zones.id = parking_spots.zone_id").
		Group("parking_spots.zone_id, parking_zones.name, parking_spots.status").
		Scan(&rows).
		Error; err != nil {
		return nil, err
	}

	byZone := map[uint]*ZoneOccupancy{}
	order := []uint{}
	for _, row := range rows {
		z, ok := byZone[row.ZoneID]
		if !ok {
			z = &ZoneOccupancy{ZoneID: row.ZoneID, Name: row.Name}
			byZone[row.ZoneID] = z
			order = append(order, row.ZoneID)
		}
		z.Capacity += row.Total
		switch row.Status {
		case types.SPOT_OCCUPIED:
			z.Occupied += row.Total
		case types.SPOT_MAINTENANCE:
			z.Maintenance += row.Total
		default:
			z.Available += row.Total
		}
	}

	report := OccupancyReport{ByZone: make([]ZoneOccupancy, 0, len(order))}
	for _, id := range order {
		z := byZone[id]
		if z.Capacity > 0 {
			z.OccupancyRate = float64(z.Occupied) / float64(z.Capacity)
		}
		report.Totals.Capacity += z.Capacity
		report.Totals.Occupied += z.Occupied
		report.Totals.Available += z.Available
		report.Totals.Maintenance += z.Maintenance
		report.ByZone = append(report.ByZone, *z)
	}
	if report.Totals.Capacity > 0 {
		report.Totals.OccupancyRate = float64(report.Totals.Occupied) / float64(report.Totals.Capacity)
	}

	if rd != nil {
		if payload, err := json.Marshal(&report); err == nil {
			if err := rd.SetEx(context.Background(), occupancyCacheKey, string(payload), 30*time.Second).Err(); err != nil {
				log.Printf("[redis] Error caching occupancy report: %s\n", err.Error())
			}
		}
	}
	return &report, nil
}

// InvalidateOccupancyCache drops the cached report after any write that
// changes spot status.
func InvalidateOccupancyCache() {
	rd := lib.GetRedisClient()
	if rd == nil {
		return
	}
	if err := rd.Del(context.Background(), occupancyCacheKey).Err(); err != nil {
		log.Printf("[redis] Error invalidating occupancy cache: %s\n", err.Error())
	}
}
