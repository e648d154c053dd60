package model

// ProfileUpdate is a typed partial update of profile fields. Nil means
// "leave unchanged".
type ProfileUpdate struct {
	FirstName *string
	LastName  *string
	Phone     *string
	Company   *string
}

// HasChanges reports whether any field is set.
func (u ProfileUpdate) HasChanges() bool {
	return u.FirstName != nil || u.LastName != nil || u.Phone != nil || u.Company != nil
}

// Changes returns the column assignments to apply.
func (u ProfileUpdate) Changes() map[string]interface{} {
	changes := map[string]interface{}{}
	if u.FirstName != nil {
		changes["first_name"] = *u.FirstName
	}
	if u.LastName != nil {
		changes["last_name"] = *u.LastName
	}
	if u.Phone != nil {
		changes["phone"] = *u.Phone
	}
	if u.Company != nil {
		changes["company"] = *u.Company
	}
	return changes
}

// NotificationUpdate is a typed partial update of the preference flags.
type NotificationUpdate struct {
	ProjectUpdates *bool
	TicketReplies  *bool
	Invoices       *bool
	Marketing      *bool
}

// HasChanges reports whether any flag is set.
func (u NotificationUpdate) HasChanges() bool {
	return u.ProjectUpdates != nil || u.TicketReplies != nil || u.Invoices != nil || u.Marketing != nil
}

// Changes returns the column assignments to apply.
func (u NotificationUpdate) Changes() map[string]interface{} {
	changes := map[string]interface{}{}
	if u.ProjectUpdates != nil {
		changes["notify_project_updates"] = *u.ProjectUpdates
	}
	if u.TicketReplies != nil {
		changes["notify_ticket_replies"] = *u.TicketReplies
	}
	if u.Invoices != nil {
		changes["notify_invoices"] = *u.Invoices
	}
	if u.Marketing != nil {
		changes["notify_marketing"] = *u.Marketing
	}
	return changes
}
