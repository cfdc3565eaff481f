package internal

import (
	"log"

	"github.com/robfig/cron/v3"
)

const CRON_SCHEDULE_RELOAD = "5 * * * *" // Every hour

// StartCron schedules a periodic reload of the stations dataset so a fresh
// run of the convert command is picked up without restarting the server.
func StartCron(store StationStore) (*cron.Cron, error) {

	c := cron.New()

	log.Print("Starting CRON job to reload the stations dataset")

	if _, err := c.AddFunc(CRON_SCHEDULE_RELOAD, func() {
		if err := store.Reload(); err != nil {
			log.Printf("Error reloading dataset: %v\n", err)
			return
		}
		log.Printf("Reloaded dataset: %d stations", store.Count())
	}); err != nil {
		return nil, err
	}

	c.Start()
	return c, nil
}
