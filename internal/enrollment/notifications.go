package enrollment

import (
	"fmt"
	"time"

	"github.com/mmcdole/syllabus/internal/domain"
)

const (
	toastDuration  = 2 * time.Second
	lessonDuration = 6 * time.Second
	warnDuration   = 5 * time.Second
)

// Notification titles, exported so renderers and tests can match on them.
const (
	TitleEnrolled                = "Enrolled Successfully!"
	TitleAlreadyEnrolled         = "Already Enrolled"
	TitleUnenrolling             = "Unenrolling"
	TitleUnenrolled              = "Unenrolled"
	TitleUnenrollCancelled       = "Unenrollment Cancelled"
	TitleWishlistAdded           = "Added to Wishlist"
	TitleAlreadyWishlisted       = "Already in Wishlist"
	TitleWishlistRemoving        = "Removing from Wishlist"
	TitleWishlistRemoved         = "Removed from Wishlist"
	TitleWishlistRemoveCancelled = "Removal Cancelled"
	TitleLessonsCompleted        = "Lessons Completed."
	TitleNotSaved                = "Changes Not Saved"
)

func enrolled(title string) domain.Notification {
	return domain.Notification{
		Title:    TitleEnrolled,
		Message:  fmt.Sprintf("You are now enrolled in %q", title),
		Duration: toastDuration,
		Level:    domain.LevelSuccess,
	}
}

func alreadyEnrolled(title string) domain.Notification {
	return domain.Notification{
		Title:    TitleAlreadyEnrolled,
		Message:  fmt.Sprintf("You are already enrolled in %q", title),
		Duration: toastDuration,
	}
}

func unenrollPending(title string, window time.Duration, undo func()) domain.Notification {
	return domain.Notification{
		Title:    TitleUnenrolling,
		Message:  fmt.Sprintf("Leaving %q in %s", title, window),
		Duration: window,
		Action:   &domain.Action{Label: "Undo", Run: undo},
	}
}

func unenrolled(title string) domain.Notification {
	return domain.Notification{
		Title:    TitleUnenrolled,
		Message:  fmt.Sprintf("You have unenrolled from %q", title),
		Duration: toastDuration,
	}
}

func unenrollCancelled(title string) domain.Notification {
	return domain.Notification{
		Title:    TitleUnenrollCancelled,
		Message:  fmt.Sprintf("You are still enrolled in %q", title),
		Duration: toastDuration,
	}
}

func wishlistAdded(title string) domain.Notification {
	return domain.Notification{
		Title:    TitleWishlistAdded,
		Message:  fmt.Sprintf("%q has been added to your wishlist", title),
		Duration: toastDuration,
		Level:    domain.LevelSuccess,
	}
}

func alreadyWishlisted(title string) domain.Notification {
	return domain.Notification{
		Title:    TitleAlreadyWishlisted,
		Message:  fmt.Sprintf("%q is already in your wishlist", title),
		Duration: toastDuration,
	}
}

func wishlistRemovalPending(title string, window time.Duration, undo func()) domain.Notification {
	return domain.Notification{
		Title:    TitleWishlistRemoving,
		Message:  fmt.Sprintf("Removing %q in %s", title, window),
		Duration: window,
		Action:   &domain.Action{Label: "Undo", Run: undo},
	}
}

func wishlistRemoved(title string) domain.Notification {
	return domain.Notification{
		Title:    TitleWishlistRemoved,
		Message:  fmt.Sprintf("%q has been removed from your wishlist", title),
		Duration: toastDuration,
	}
}

func wishlistRemovalCancelled(title string) domain.Notification {
	return domain.Notification{
		Title:    TitleWishlistRemoveCancelled,
		Message:  fmt.Sprintf("%q is still in your wishlist", title),
		Duration: toastDuration,
	}
}

func lessonsCompleted(title string, count int) domain.Notification {
	plural := ""
	if count != 1 {
		plural = "s"
	}
	return domain.Notification{
		Title: TitleLessonsCompleted,
		Message: fmt.Sprintf("Course instructor has confirmed your completion of %d lesson%s in %q.",
			count, plural, title),
		Duration:  lessonDuration,
		Level:     domain.LevelSuccess,
		Broadcast: true,
	}
}

func notSaved(err error) domain.Notification {
	return domain.Notification{
		Title:    TitleNotSaved,
		Message:  err.Error(),
		Duration: warnDuration,
		Level:    domain.LevelWarning,
	}
}
