package postgres

import (
	"gorm.io/gorm"

	departmentDatamodel "github.com/frahmantamala/membership-management/internal/core/datamodel/department"
	"github.com/frahmantamala/membership-management/internal/department"
)

type DepartmentRepository struct {
	db *gorm.DB
}

func NewDepartmentRepository(db *gorm.DB) department.RepositoryAPI {
	return &DepartmentRepository{db: db}
}

func (r *DepartmentRepository) GetAll() ([]*departmentDatamodel.Department, error) {
	var departments []*departmentDatamodel.Department
	err := r.db.Order("department_name ASC").Find(&departments).Error
	return departments, err
}
