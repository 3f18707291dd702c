package services

import (
	"testing"
	"time"

	"kakeibo/internal/models"
	"kakeibo/internal/testutil"
	"kakeibo/internal/uuid"
)

func TestCreateFamily(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	svc := NewFamilyService(db)

	t.Run("creates family with member and seeded defaults", func(t *testing.T) {
		user := testutil.CreateTestUser(t, db)

		family, member, err := svc.CreateFamily(user.ID, "Tanaka Household", "Mum", nil)
		testutil.AssertNoError(t, err)
		if member.FamilyID != family.ID {
			t.Errorf("expected member in family %d, got %d", family.ID, member.FamilyID)
		}

		var categoryCount int64
		db.Model(&models.Category{}).Where("family_id = ?", family.ID).Count(&categoryCount)
		if categoryCount != int64(len(defaultCategories)) {
			t.Errorf("expected %d seeded categories, got %d", len(defaultCategories), categoryCount)
		}

		var insuranceCount int64
		db.Model(&models.Category{}).
			Where("family_id = ? AND is_insurance_saving = ?", family.ID, true).
			Count(&insuranceCount)
		if insuranceCount != 1 {
			t.Errorf("expected exactly 1 insurance category, got %d", insuranceCount)
		}

		var methodCount int64
		db.Model(&models.PaymentMethod{}).Where("family_id = ?", family.ID).Count(&methodCount)
		if methodCount != int64(len(defaultPaymentMethods)) {
			t.Errorf("expected %d seeded payment methods, got %d", len(defaultPaymentMethods), methodCount)
		}

		settings, err := svc.GetNotificationSettings(family.ID)
		testutil.AssertNoError(t, err)
		if !settings.EnableNotifications || settings.DaysWithoutLog != 3 {
			t.Errorf("unexpected default settings: %+v", settings)
		}
	})

	t.Run("rejects a user who already has a family", func(t *testing.T) {
		user := testutil.CreateTestUser(t, db)
		_, _, err := svc.CreateFamily(user.ID, "First", "Me", nil)
		testutil.AssertNoError(t, err)

		_, _, err = svc.CreateFamily(user.ID, "Second", "Me", nil)
		testutil.AssertAppError(t, err, "ALREADY_IN_FAMILY")
	})
}

func TestInvites(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	svc := NewFamilyService(db)

	t.Run("invite can be redeemed once", func(t *testing.T) {
		family, member := testutil.CreateTestFamily(t, db)

		invite, err := svc.CreateInvite(family.ID, member.ID)
		testutil.AssertNoError(t, err)
		if invite.Code == "" {
			t.Fatal("expected invite code")
		}

		joiner := testutil.CreateTestUser(t, db)
		joined, err := svc.JoinFamily(joiner.ID, invite.Code, "Dad")
		testutil.AssertNoError(t, err)
		if joined.FamilyID != family.ID {
			t.Errorf("expected joiner in family %d, got %d", family.ID, joined.FamilyID)
		}

		second := testutil.CreateTestUser(t, db)
		_, err = svc.JoinFamily(second.ID, invite.Code, "Uncle")
		testutil.AssertAppError(t, err, "INVITE_INVALID")
	})

	t.Run("expired invite is rejected", func(t *testing.T) {
		family, member := testutil.CreateTestFamily(t, db)
		invite, err := svc.CreateInvite(family.ID, member.ID)
		testutil.AssertNoError(t, err)
		testutil.AssertNoError(t, db.Model(invite).
			Update("expires_at", time.Now().Add(-time.Hour)).Error)

		joiner := testutil.CreateTestUser(t, db)
		_, err = svc.JoinFamily(joiner.ID, invite.Code, "Dad")
		testutil.AssertAppError(t, err, "INVITE_INVALID")
	})

	t.Run("malformed code is rejected", func(t *testing.T) {
		joiner := testutil.CreateTestUser(t, db)
		_, err := svc.JoinFamily(joiner.ID, "no-such-code", "Dad")
		testutil.AssertAppError(t, err, "INVITE_NOT_FOUND")
	})

	t.Run("well-formed but unknown code is rejected", func(t *testing.T) {
		joiner := testutil.CreateTestUser(t, db)
		_, err := svc.JoinFamily(joiner.ID, uuid.New(), "Dad")
		testutil.AssertAppError(t, err, "INVITE_NOT_FOUND")
	})

	t.Run("member of another family cannot join", func(t *testing.T) {
		family, member := testutil.CreateTestFamily(t, db)
		invite, err := svc.CreateInvite(family.ID, member.ID)
		testutil.AssertNoError(t, err)

		_, existing := testutil.CreateTestFamily(t, db)
		_, err = svc.JoinFamily(existing.UserID, invite.Code, "Dad")
		testutil.AssertAppError(t, err, "ALREADY_IN_FAMILY")
	})
}

func TestNotificationSettings(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	svc := NewFamilyService(db)
	family, _ := testutil.CreateTestFamily(t, db)

	t.Run("creates defaults on first read", func(t *testing.T) {
		settings, err := svc.GetNotificationSettings(family.ID)
		testutil.AssertNoError(t, err)
		if settings.DaysWithoutLog != 3 {
			t.Errorf("expected default threshold 3, got %d", settings.DaysWithoutLog)
		}
	})

	t.Run("updates configuration", func(t *testing.T) {
		settings, err := svc.UpdateNotificationSettings(family.ID, false, 7, "a@test.com\nb@test.com")
		testutil.AssertNoError(t, err)
		if settings.EnableNotifications {
			t.Error("expected notifications disabled")
		}
		if settings.DaysWithoutLog != 7 {
			t.Errorf("expected threshold 7, got %d", settings.DaysWithoutLog)
		}
		if emails := settings.EmailList(); len(emails) != 2 {
			t.Errorf("expected 2 recipients, got %v", emails)
		}
	})

	t.Run("rejects threshold below one", func(t *testing.T) {
		_, err := svc.UpdateNotificationSettings(family.ID, true, 0, "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}
