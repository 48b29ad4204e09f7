package enums

const (
	NotificationTypeGeneral  = "general"
	NotificationTypeSchedule = "schedule"
	NotificationTypePayment  = "payment"
	NotificationTypeUrgent   = "urgent"
)

const (
	NotificationTargetAll     = "all"
	NotificationTargetParents = "parents"
	NotificationTargetPlayers = "players"
	NotificationTargetCoaches = "coaches"
)
