package attendance

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Attendance is one captured working day for one employee. The payroll engine
// only consumes WorkedMinutes; capture (clock in/out, geolocation, source
// device) happens in the attendance service upstream.
type Attendance struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID     uuid.UUID      `gorm:"type:uuid;not null;index:idx_attendance_employee_date"`
	AttendanceDate time.Time      `gorm:"type:date;not null;index:idx_attendance_employee_date"`
	WorkedMinutes  int            `gorm:"type:int;not null;default:0"`
	Source         string         `gorm:"type:varchar(30);not null;default:'MANUAL'"`
	CreatedAt      time.Time      `gorm:"column:created_at"`
	UpdatedAt      time.Time      `gorm:"column:updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index"`
}

func (Attendance) TableName() string {
	return "attendances"
}
