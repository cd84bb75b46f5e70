package department

type Department struct {
	ID       int64  `gorm:"primaryKey"`
	Name     string `gorm:"column:department_name;not null"`
	IsActive bool   `gorm:"column:is_active;default:true"`
}

func (Department) TableName() string {
	return "departments"
}
