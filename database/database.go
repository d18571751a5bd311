package database

import (
	"fmt"
	"log"

	"budget/config"
	"budget/models"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Init 初始化数据库连接
func Init(cfg *config.Config) error {
	// 构建 MySQL DSN 连接字符串
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=%s&parseTime=True&loc=Local",
		cfg.Database.Username,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.DBName,
		cfg.Database.Charset,
	)

	var err error
	DB, err = gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})
	if err != nil {
		return fmt.Errorf("连接数据库失败: %w", err)
	}

	// 获取底层 *sql.DB 连接池配置
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}

	// 设置连接池参数
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	// 自动迁移数据库表
	if err := DB.AutoMigrate(
		&models.User{},
		&models.ChangeRequest{},
		&models.Income{},
		&models.Expense{},
		&models.Saving{},
		&models.ExpenseCategory{},
		&models.IncomeSource{},
		&models.EmailVerification{},
		&models.PriceComparison{},
	); err != nil {
		return err
	}

	// 初始化默认支出类别（仅当表为空时）
	var catCount int64
	DB.Model(&models.ExpenseCategory{}).Count(&catCount)
	if catCount == 0 {
		// 默认类别对应的颜色（与前端 CSS 保持一致）
		colorMap := map[string]string{
			models.CategoryGroceries:     "#ef4444",
			models.CategoryTransport:     "#3b82f6",
			models.CategoryHousing:       "#14b8a6",
			models.CategoryUtilities:     "#f59e0b",
			models.CategoryEntertainment: "#ec4899",
			models.CategoryMedical:       "#10b981",
			models.CategoryEducation:     "#a855f7",
			models.CategoryOther:         "#64748b",
		}
		var cats []models.ExpenseCategory
		for i, name := range models.GetDefaultCategories() {
			color := colorMap[name]
			if color == "" {
				color = "#64748b"
			}
			cats = append(cats, models.ExpenseCategory{
				Name:  name,
				Sort:  (i + 1) * 10,
				Color: color,
			})
		}
		if len(cats) > 0 {
			_ = DB.Create(&cats).Error
		}
	}

	// 初始化默认收入来源（仅当表为空时）
	var sourceCount int64
	DB.Model(&models.IncomeSource{}).Count(&sourceCount)
	if sourceCount == 0 {
		defaultSources := []struct {
			Name  string
			Sort  int
			Color string
		}{
			{"Salary", 10, "#10b981"},
			{"Bonus", 20, "#3b82f6"},
			{"Investment", 30, "#a855f7"},
			{"Freelance", 40, "#f59e0b"},
			{"Other", 50, "#64748b"},
		}
		var sources []models.IncomeSource
		for _, item := range defaultSources {
			sources = append(sources, models.IncomeSource{
				Name:  item.Name,
				Sort:  item.Sort,
				Color: item.Color,
			})
		}
		if len(sources) > 0 {
			_ = DB.Create(&sources).Error
		}
	}

	// 初始化比价示例数据（仅当表为空时）
	var priceCount int64
	DB.Model(&models.PriceComparison{}).Count(&priceCount)
	if priceCount == 0 {
		prices := []models.PriceComparison{
			{Product: "Milk 1L", Store: "FreshMart", Category: models.CategoryGroceries, Price: 1.09, IsBestDeal: true},
			{Product: "Milk 1L", Store: "SuperSave", Category: models.CategoryGroceries, Price: 1.25},
			{Product: "Milk 1L", Store: "CornerShop", Category: models.CategoryGroceries, Price: 1.49},
			{Product: "Monthly Bus Pass", Store: "CityTransit", Category: models.CategoryTransport, Price: 49.00, IsBestDeal: true},
			{Product: "Monthly Bus Pass", Store: "MetroLine", Category: models.CategoryTransport, Price: 55.00},
		}
		_ = DB.Create(&prices).Error
	}

	log.Println("数据库初始化成功")
	return nil
}

// GetDB 获取数据库连接
func GetDB() *gorm.DB {
	return DB
}
