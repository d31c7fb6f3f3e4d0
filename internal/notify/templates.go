package notify

import "fmt"

// Render builds the subject and body for a template key. Unknown keys
// fall back to a generic account-update message so a bad key never
// drops a notification on the floor.
func Render(templateKey, name string, vars map[string]string) (subject, body string) {
	switch templateKey {
	case "membership_purchased":
		subject = "Welcome to GymCore!"
		body = fmt.Sprintf(`Hi %s,

Your membership is active. It runs until %s.

Amount charged: %s cents.

See you at the gym!

- GymCore Team`, name, vars["end_date"], vars["total_cents"])

	case "membership_suspended":
		subject = "Membership Suspended"
		body = fmt.Sprintf(`Hi %s,

Your membership has been suspended until %s.
Reason: %s

Your end date will be extended by the suspension period when you return.

- GymCore Team`, name, vars["until"], vars["reason"])

	case "membership_reactivated":
		subject = "Membership Reactivated"
		body = fmt.Sprintf(`Hi %s,

Welcome back! Your membership is active again and now runs until %s.

- GymCore Team`, name, vars["end_date"])

	case "membership_expired":
		subject = "Membership Expired"
		body = fmt.Sprintf(`Hi %s,

Your membership has expired. Renew any time to pick up where you left off.

- GymCore Team`, name)

	case "membership_cancelled":
		subject = "Membership Cancelled"
		body = fmt.Sprintf(`Hi %s,

Your membership has been cancelled. We're sorry to see you go.

- GymCore Team`, name)

	case "reservation_confirmed":
		subject = "Reservation Confirmed"
		body = fmt.Sprintf(`Hi %s,

Your reservation is confirmed for %s.

See you there!

- GymCore Team`, name, vars["start_time"])

	case "reservation_cancelled":
		subject = "Reservation Cancelled"
		body = fmt.Sprintf(`Hi %s,

Your reservation for %s has been cancelled.

- GymCore Team`, name, vars["start_time"])

	case "class_joined":
		subject = "You're In!"
		body = fmt.Sprintf(`Hi %s,

Your spot in the class is confirmed.

- GymCore Team`, name)

	default:
		subject = "GymCore Update"
		body = fmt.Sprintf(`Hi %s,

There's an update on your account.

- GymCore Team`, name)
	}

	return subject, body
}
