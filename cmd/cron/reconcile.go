package main

import (
	"context"
	"log"
	"time"

	"kindlog/internal/datastore"
	"kindlog/internal/services"

	"github.com/go-redsync/redsync/v4"
	"github.com/robfig/cron/v3"
	"github.com/uptrace/bun"
)

// ReconcileJob recomputes the denormalized counters from the event rows and
// repairs any drift. The counters are maintained transactionally so drift
// should be zero; this job exists to prove that and to recover from manual
// data surgery.
type ReconcileJob struct {
	Db *bun.DB
	Rs *redsync.Redsync
}

func NewReconcileJob(db *bun.DB, rs *redsync.Redsync) *ReconcileJob {
	return &ReconcileJob{
		Db: db,
		Rs: rs,
	}
}

func (j *ReconcileJob) Start(cronRunner *cron.Cron) {
	schedule := "@every 6h"
	timeline, err := datastore.GetConfigByKey(context.Background(), j.Db, services.CONFIG_CRONJOB_TIME_RECONCILE)
	if err == nil && timeline.Value != "" {
		schedule = timeline.Value
	}

	_, err = cronRunner.AddFunc(schedule, j.runScheduledTask)
	log.Println("Reconcile Cronjob start at:", time.Now().Format("2006-01-02 15:04:05"), "cron:", schedule, err)
}

func (j *ReconcileJob) runScheduledTask() {
	ctx := context.Background()

	// one replica runs the sweep, the rest skip this round
	mutex := j.Rs.NewMutex(services.LockKeyReconcile(), redsync.WithExpiry(10*time.Minute))
	if err := mutex.Lock(); err != nil {
		log.Println("reconcile: another instance holds the lock, skipping")
		return
	}
	//nolint:errcheck
	defer mutex.Unlock()

	log.Println("Start reconciling counters ...")
	repaired := 0

	limit := 100
	offset := 0
	for {
		users, err := datastore.GetUsersByLimit(ctx, j.Db, limit, offset)
		if err != nil {
			log.Println(err)
			return
		}
		if len(users) == 0 {
			break
		}
		offset += limit

		for _, user := range users {
			totalActions, err := datastore.CountActionsByUser(ctx, j.Db, user.ID)
			if err != nil {
				log.Println(err)
				continue
			}

			clapsReceived, err := datastore.CountClapsReceivedByUser(ctx, j.Db, user.ID)
			if err != nil {
				log.Println(err)
				continue
			}

			if user.TotalActions == totalActions && user.ClapsReceived == clapsReceived {
				continue
			}

			log.Printf("reconcile: user %d total_actions %d->%d claps_received %d->%d",
				user.ID, user.TotalActions, totalActions, user.ClapsReceived, clapsReceived)
			user.TotalActions = totalActions
			user.ClapsReceived = clapsReceived
			if _, err := datastore.EditUser(ctx, j.Db, user); err != nil {
				log.Println(err)
				continue
			}
			repaired++

			if err := j.reconcileUserActions(ctx, user.ID); err != nil {
				log.Println(err)
			}
		}
	}

	log.Println("Reconcile finished, repaired users:", repaired)
}

func (j *ReconcileJob) reconcileUserActions(ctx context.Context, userID int64) error {
	limit := 100
	offset := 0
	for {
		actions, err := datastore.GetActionsByUser(ctx, j.Db, userID, limit, offset)
		if err != nil {
			return err
		}
		if len(actions) == 0 {
			return nil
		}
		offset += limit

		for _, action := range actions {
			claps, err := datastore.CountClapsByAction(ctx, j.Db, action.ID)
			if err != nil {
				log.Println(err)
				continue
			}
			if action.ClapsCount == claps {
				continue
			}

			log.Printf("reconcile: action %s claps_count %d->%d", action.UUID, action.ClapsCount, claps)
			if err := datastore.SetActionClapsCount(ctx, j.Db, action.ID, claps); err != nil {
				log.Println(err)
			}
		}
	}
}
