package database

import (
	"ery_cursos_backend/internal/config"
	"ery_cursos_backend/internal/model"
	"fmt"
	"log"
	"strconv"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig, course *config.CourseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	err = db.AutoMigrate(
		&model.User{},
		&model.Unit{},
		&model.Assignment{},
		&model.CompletionFact{},
		&model.Notification{},
		&model.Submission{},
		&model.Grade{},
	)

	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	if err := seedCourse(db, course); err != nil {
		return nil, err
	}

	return db, nil
}

// seedCourse creates the configured units and one weekly assignment per
// lesson slot when the tables are empty. Deadlines start out unset; the
// admin surface fills them in later.
func seedCourse(db *gorm.DB, course *config.CourseConfig) error {
	var count int64
	if err := db.Model(&model.Unit{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for i, key := range course.Units {
		unit := model.Unit{
			Key:   key,
			Title: "Unidad " + strconv.Itoa(i+1),
			Order: i + 1,
		}
		if err := db.Create(&unit).Error; err != nil {
			return err
		}

		total := course.TotalLessons(key)
		for week := 1; week <= total; week++ {
			assignment := model.Assignment{
				UnitID:     unit.ID,
				UnitKey:    unit.Key,
				WeekNumber: week,
				Title:      fmt.Sprintf("Semana %d - %s", week, unit.Title),
			}
			if err := db.Create(&assignment).Error; err != nil {
				return err
			}
		}
	}

	log.Printf("Seeded %d units with weekly assignments", len(course.Units))
	return nil
}
