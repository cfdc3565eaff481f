package routes

import (
	"fmt"
	"log"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/precios-ar/precios-api/internal"
	"github.com/precios-ar/precios-api/internal/brands"
	"github.com/precios-ar/precios-api/internal/models"
	"github.com/precios-ar/precios-api/internal/stats"

	"github.com/gin-gonic/gin"
)

const MAX_BOUNDS = 100_000 // Maximum bounds in meters (100 KM)

func Search(store internal.StationStore) func(c *gin.Context) {
	return func(c *gin.Context) {
		bbox, err := parseBBox(c.Query("bbox"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		bucketSizeStr := c.Query("bucket-size")
		bucketSize := 5 // default bucket width for the price distribution
		if bucketSizeStr != "" {
			b, berr := strconv.Atoi(bucketSizeStr)
			if berr != nil || b <= 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid bucket-size parameter"})
				return
			}
			bucketSize = b
		}

		results, err := store.Search(bbox)

		if err != nil {
			log.Printf("error while searching stations: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "An internal server error occurred"})
			return
		}

		c.JSON(http.StatusOK, models.SearchResponse{
			Results:     results,
			Attribution: internal.ATTRIBUTION,
			Statistics:  stats.Derive(results, bucketSize),
			LastUpdated: store.LastUpdated(),
		})
	}
}

func Flags() func(c *gin.Context) {
	return func(c *gin.Context) {
		flags, err := brands.GetFlagsList()
		if err != nil {
			log.Printf("error while loading flags: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "An internal server error occurred"})
			return
		}
		c.JSON(http.StatusOK, flags)
	}
}

func parseBBox(bboxStr string) ([]float64, error) {
	bboxParts := strings.Split(bboxStr, ",")
	if len(bboxParts) != 4 {
		return nil, fmt.Errorf("bbox must have 4 comma-separated values")
	}

	bbox := make([]float64, 4)
	for i, part := range bboxParts {
		val, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid bbox value '%s': not a valid float", part)
		}
		bbox[i] = val
	}

	latSpan := bbox[3] - bbox[1]
	lonSpan := bbox[2] - bbox[0]
	avgLatRad := (bbox[1] + bbox[3]) / 2 * math.Pi / 180.0

	if math.Abs(latSpan)*111132 > MAX_BOUNDS || math.Abs(lonSpan)*111132*math.Cos(avgLatRad) > MAX_BOUNDS {
		return nil, fmt.Errorf("bbox must define a valid area (no more than %d KM in either dimension)", MAX_BOUNDS/1000)
	}

	return bbox, nil
}
