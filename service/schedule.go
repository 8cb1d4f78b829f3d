package service

import (
	"time"

	"github.com/launchhub/portal_end/models"
	"github.com/launchhub/portal_end/repository"
	"github.com/launchhub/portal_end/utils"

	"go.mongodb.org/mongo-driver/bson"
)

// ScheduleDailyTaskAt runs task every day at the given local time.
func ScheduleDailyTaskAt(hour, min, sec int, task func()) {
	go func() {
		for {
			now := time.Now()
			next := time.Date(now.Year(), now.Month(), now.Day(), hour, min, sec, 0, now.Location())
			if now.After(next) {
				next = next.Add(24 * time.Hour)
			}
			time.Sleep(next.Sub(now))
			task()
		}
	}()
}

// configEnabled reads whether the named scheduler task is switched on.
// Missing config defaults to enabled.
func configEnabled(configType string) bool {
	collection := repository.Collection(repository.SystemConfigsCollection)
	var cfg models.SystemConfig
	err := collection.FindOne(repository.GetContext(), bson.M{"configType": configType}).Decode(&cfg)
	if err != nil {
		return true
	}
	return cfg.IsEnabled
}

// ExpireLapsedMemberships flips ACTIVE memberships whose period has ended
// to EXPIRED.
func ExpireLapsedMemberships() {
	if !configEnabled(models.ConfigMembershipAutoExpire) {
		utils.Logger.Info().Msg("membership auto-expire disabled, skipping")
		return
	}

	ctx := repository.GetContext()
	collection := repository.Collection(repository.MembershipsCollection)

	now := time.Now()
	result, err := collection.UpdateMany(ctx,
		bson.M{
			"status":    models.MembershipACTIVE,
			"expiresAt": bson.M{"$lt": now},
		},
		bson.M{"$set": bson.M{
			"status":    models.MembershipEXPIRED,
			"updatedAt": now,
		}},
	)
	if err != nil {
		utils.Logger.Error().Err(err).Msg("failed to expire lapsed memberships")
		return
	}
	if result.ModifiedCount > 0 {
		utils.Logger.Info().Int64("count", result.ModifiedCount).Msg("expired lapsed memberships")
	}
}

// SendWebinarReminders mails every registrant of webinars starting within
// the next 24 hours, once per registration.
func SendWebinarReminders(mailer *Mailer) {
	if !configEnabled(models.ConfigWebinarReminder) {
		utils.Logger.Info().Msg("webinar reminders disabled, skipping")
		return
	}
	if !mailer.Enabled() {
		return
	}

	ctx := repository.GetContext()
	webinars := repository.Collection(repository.WebinarsCollection)

	now := time.Now()
	cursor, err := webinars.Find(ctx, bson.M{
		"active":   true,
		"startsAt": bson.M{"$gt": now, "$lt": now.Add(24 * time.Hour)},
	})
	if err != nil {
		utils.Logger.Error().Err(err).Msg("failed to query upcoming webinars")
		return
	}
	defer cursor.Close(ctx)

	var upcoming []models.Webinar
	if err := cursor.All(ctx, &upcoming); err != nil {
		utils.Logger.Error().Err(err).Msg("failed to decode upcoming webinars")
		return
	}

	registrations := repository.Collection(repository.RegistrationsCollection)
	for _, webinar := range upcoming {
		regCursor, err := registrations.Find(ctx, bson.M{
			"webinarId":  webinar.ID,
			"reminderAt": bson.M{"$exists": false},
		})
		if err != nil {
			utils.Logger.Error().Err(err).Str("webinar", webinar.Title).Msg("failed to query registrations")
			continue
		}

		var regs []models.WebinarRegistration
		if err := regCursor.All(ctx, &regs); err != nil {
			utils.Logger.Error().Err(err).Str("webinar", webinar.Title).Msg("failed to decode registrations")
			continue
		}

		for _, reg := range regs {
			body := ReminderHTML(webinar.Title, webinar.StartsAt, webinar.MeetingURL)
			if err := mailer.Send(reg.Email, "Reminder: "+webinar.Title, body); err != nil {
				utils.Logger.Error().Err(err).Str("email", reg.Email).Msg("failed to send reminder")
				continue
			}
			sentAt := time.Now()
			_, err := registrations.UpdateOne(ctx,
				bson.M{"_id": reg.ID},
				bson.M{"$set": bson.M{"reminderAt": sentAt}},
			)
			if err != nil {
				utils.Logger.Error().Err(err).Str("email", reg.Email).Msg("failed to mark reminder sent")
			}
		}
	}
}
