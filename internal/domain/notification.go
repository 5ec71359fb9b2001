package domain

const (
	NotificationTypeSession = "Session"

	SessionNotifBooked    = "Booked"
	SessionNotifCancelled = "Cancelled"
)

// Notification — запись ленты уведомлений пользователя. Для сессионных
// уведомлений обе стороны получают по записи: NotifUserID указывает
// получателя, OtherID и OtherName описывают вторую сторону сессии.
type Notification struct {
	ID         string `json:"notif_id" bson:"_id"`
	Type       string `json:"notif_type" bson:"notifType"`
	UserID     string `json:"notif_user_id" bson:"notifUserID"`
	UserName   string `json:"notif_user_name" bson:"notifUserName"`
	Time       string `json:"notif_time" bson:"notifTime"`
	Date       string `json:"notif_date" bson:"notifDate"`
	Comments   string `json:"comments" bson:"comments"`
	SessType   string `json:"sess_type" bson:"sessType"`
	SessDate   string `json:"sess_date" bson:"sessDate"`
	SessTime   string `json:"sess_time" bson:"sessTime"`
	OtherID    string `json:"other_id" bson:"otherID"`
	OtherName  string `json:"other_name" bson:"otherName"`
	Subject    string `json:"subject" bson:"subject"`
	Grade      string `json:"grade" bson:"grade"`
	Spec       string `json:"spec" bson:"spec"`
	Mode       string `json:"mode" bson:"mode"`
	Price      string `json:"price" bson:"price"`
}
