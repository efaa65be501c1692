package notification

import (
	"fmt"
	"strings"

	"course_portal_backend/internal/scheduler"
)

const messageTimeLayout = "2006-01-02 15:04"

// RenderLeadMessage formats the plain-text group announcement.
func RenderLeadMessage(p scheduler.NotifyGroupsPayload) string {
	var sb strings.Builder
	sb.WriteString("New lead\n")
	fmt.Fprintf(&sb, "Name: %s\n", p.FullName)
	fmt.Fprintf(&sb, "Phone: %s\n", p.PhoneNumber)
	fmt.Fprintf(&sb, "Course: %s\n", p.CourseName)
	if !p.NewContact {
		sb.WriteString("Returning contact\n")
	}
	if !p.CreatedAt.IsZero() {
		fmt.Fprintf(&sb, "Received: %s", p.CreatedAt.UTC().Format(messageTimeLayout))
	}
	return strings.TrimRight(sb.String(), "\n")
}
