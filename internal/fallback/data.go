package fallback

import "warranty/internal/domain"

func newDataset() *Dataset {
	w := func(id, code, name, serial, customer, phone string, period int, status domain.WarrantyStatus, start, expiry, created string) domain.Warranty {
		return domain.Warranty{
			ID: id, ProductID: id, ProductCode: code, ProductName: name,
			SerialNumber: serial, SellerID: "1", SellerName: "Test User",
			CustomerName: customer, CustomerPhone: phone,
			WarrantyPeriod: period, Status: status,
			StartDate: start, ExpiryDate: expiry,
			CreatedAt: created, UpdatedAt: created,
		}
	}
	s := func(id, warrantyID, code, name, serial, customer, phone, problem, solution string, isWarranty bool, price int64, status domain.ServiceStatus, ws domain.WarrantyStatus, created, updated string) domain.Service {
		return domain.Service{
			ID: id, WarrantyID: warrantyID, ProductCode: code, ProductName: name,
			SerialNumber: serial, TechnicianID: "1", TechnicianName: "Санжар Усмонов",
			CustomerName: customer, CustomerPhone: phone,
			Problem: problem, Solution: solution,
			IsWarranty: isWarranty, Price: price, Status: status, WarrantyStatus: ws,
			CreatedAt: created, UpdatedAt: updated,
		}
	}
	p := func(id, code, name, category string, months int) domain.Product {
		return domain.Product{ID: id, Code: code, Name: name, Category: category, WarrantyMonths: months}
	}

	products := map[string]domain.Product{}
	for _, pr := range []domain.Product{
		p("1", "IP15PRO", "iPhone 15 Pro", "Смартфон", 12),
		p("2", "IP15PM", "iPhone 15 Pro Max", "Смартфон", 12),
		p("3", "SGS24U", "Samsung Galaxy S24 Ultra", "Смартфон", 12),
		p("4", "SGS24", "Samsung Galaxy S24", "Смартфон", 12),
		p("5", "MBA-M2", "MacBook Air M2", "Ноутбук", 12),
		p("6", "MBP-M3", "MacBook Pro M3", "Ноутбук", 12),
		p("7", "AIRPODS2", "AirPods Pro 2", "Наушники", 12),
		p("8", "SONYXM5", "Sony WH-1000XM5", "Наушники", 24),
		p("9", "IPADPRO", `iPad Pro 12.9"`, "Планшет", 12),
	} {
		products[pr.Code] = pr
	}

	return &Dataset{
		user: domain.User{
			ID: 1, TelegramID: "123456789", Phone: "+998 94 643-76-76",
			FirstName: "Test", LastName: "User", Role: domain.RoleSeller,
			Company: "Test Store", RegionID: 1, DistrictID: 1,
			Status: domain.AuthCreated, CreatedAt: "2024-01-01T00:00:00Z",
		},
		warranties: []domain.Warranty{
			w("1", "IP15PRO", "iPhone 15 Pro", "DMPXK3JKXK", "Алишер Каримов", "+998 90 123-45-67", 12, domain.WarrantyActive, "2024-01-15", "2025-01-15", "2024-01-15T10:30:00Z"),
			w("2", "SGS24", "Samsung Galaxy S24", "RF8N30BXYZK", "Дилноза Ахмедова", "+998 91 234-56-78", 24, domain.WarrantyActive, "2024-02-20", "2026-02-20", "2024-02-20T14:15:00Z"),
			w("3", "MBA-M2", "MacBook Air M2", "C02G8KZXQ6LY", "Жавлон Рахимов", "+998 93 345-67-89", 12, domain.WarrantyExpired, "2023-06-10", "2024-06-10", "2023-06-10T09:00:00Z"),
			w("4", "AIRPODS2", "AirPods Pro 2", "GQRXT4KFXK", "Нигора Тошева", "+998 94 456-78-90", 12, domain.WarrantyActive, "2024-03-01", "2025-03-01", "2024-03-01T11:45:00Z"),
			w("5", "SONYXM5", "Sony WH-1000XM5", "S01-1234567", "Фаррух Назаров", "+998 95 567-89-01", 24, domain.WarrantyActive, "2024-01-20", "2026-01-20", "2024-01-20T16:20:00Z"),
		},
		services: []domain.Service{
			s("1", "1", "IP15PRO", "iPhone 15 Pro", "DMPXK3JKXK", "Алишер Каримов", "+998 90 123-45-67",
				"Не работает Face ID после падения", "Замена модуля Face ID, калибровка",
				true, 0, domain.ServiceCompleted, domain.WarrantyActive, "2024-03-15T10:00:00Z", "2024-03-15T14:30:00Z"),
			s("2", "2", "SGS24", "Samsung Galaxy S24", "RF8N30BXYZK", "Дилноза Ахмедова", "+998 91 234-56-78",
				"Треснул экран", "",
				false, 1500000, domain.ServiceInProgress, domain.WarrantyActive, "2024-03-20T09:00:00Z", "2024-03-20T09:00:00Z"),
			s("3", "4", "AIRPODS2", "AirPods Pro 2", "GQRXT4KFXK", "Нигора Тошева", "+998 94 456-78-90",
				"Левый наушник не заряжается", "",
				true, 0, domain.ServicePending, domain.WarrantyActive, "2024-03-22T11:00:00Z", "2024-03-22T11:00:00Z"),
			s("4", "3", "MBA-M2", "MacBook Air M2", "C02G8KZXQ6LY", "Жавлон Рахимов", "+998 93 345-67-89",
				"Залитие клавиатуры", "Замена топкейса с клавиатурой",
				false, 3500000, domain.ServiceCompleted, domain.WarrantyExpired, "2024-03-10T15:00:00Z", "2024-03-12T18:00:00Z"),
		},
		products: products,
		sellerStats: domain.SellerStats{
			TotalWarranties: 5, ActiveWarranties: 4, ExpiredWarranties: 1,
			ThisMonth: 2, ThisWeek: 1,
			ByStatus: domain.StatusCounts{Active: 4, Expired: 1},
			MonthlyTrend: []domain.MonthCount{
				{Month: "2024-03", Count: 2}, {Month: "2024-02", Count: 1}, {Month: "2024-01", Count: 2},
			},
		},
		customerStats: domain.CustomerStats{
			TotalWarranties: 3, ActiveWarranties: 2, ExpiredWarranties: 1,
			TotalServices: 2, WarrantyServices: 1, PaidServices: 1,
		},
		technicianStats: domain.TechnicianStats{
			TotalServices: 4, PendingServices: 1, InProgressServices: 1,
			CompletedServices: 2, WarrantyRepairs: 2, PaidRepairs: 2,
			TotalEarnings: 5000000, ThisMonthEarnings: 1500000,
			MonthlyTrend: []domain.MonthCount{
				{Month: "2024-03", Count: 3, Earnings: 1500000},
				{Month: "2024-02", Count: 1, Earnings: 3500000},
			},
		},
		regions: []domain.Region{
			{ID: "1", Name: "Toshkent", NameUz: "Toshkent", NameRu: "Ташкент", NameEn: "Tashkent"},
			{ID: "2", Name: "Samarqand", NameUz: "Samarqand", NameRu: "Самарканд", NameEn: "Samarkand"},
			{ID: "3", Name: "Buxoro", NameUz: "Buxoro", NameRu: "Бухара", NameEn: "Bukhara"},
		},
		districts: map[string][]domain.District{
			"1": {
				{ID: "1", RegionID: "1", Name: "Yunusobod", NameUz: "Yunusobod", NameRu: "Юнусабад", NameEn: "Yunusabad"},
				{ID: "2", RegionID: "1", Name: "Chilonzor", NameUz: "Chilonzor", NameRu: "Чиланзар", NameEn: "Chilanzar"},
			},
			"2": {{ID: "3", RegionID: "2", Name: "Markaz", NameUz: "Markaz", NameRu: "Центр", NameEn: "Center"}},
			"3": {{ID: "4", RegionID: "3", Name: "Markaz", NameUz: "Markaz", NameRu: "Центр", NameEn: "Center"}},
		},
	}
}
