package mapping

import (
	"github.com/SscSPs/jewel_backoffice_app/internal/core/domain"
	"github.com/SscSPs/jewel_backoffice_app/internal/models"
)

// ToModelMetalTransaction splits a domain transaction into its header row and item rows.
func ToModelMetalTransaction(t domain.MetalTransaction) (models.MetalTransaction, []models.MetalTransactionItem) {
	row := models.MetalTransaction{
		TransactionID:   t.TransactionID,
		Metal:           string(t.Metal),
		TransactionType: string(t.TransactionType),
		TotalWeight:     t.TotalWeight.Decimal(),
		Subtotal:        t.Subtotal.Minor(),
		Total:           t.Total.Minor(),
		AdvancePaid:     t.AdvancePaid.Minor(),
		Remaining:       t.Remaining.Minor(),
		PaymentStatus:   string(t.PaymentStatus),
		PaymentMode:     string(t.PaymentMode),
		InvoiceNumber:   t.InvoiceNumber,
		BillNumber:      t.BillNumber,
		Notes:           t.Notes,
		LedgerEntryID:   t.LedgerEntryID,
		AuditFields:     ToModelAuditFields(t.AuditFields),
	}

	if cp := t.Counterparty; cp != nil {
		role := string(cp.Role)
		name := cp.DisplayName
		row.CounterpartyRole = &role
		row.CounterpartyName = &name
		row.CustomerID = cp.CustomerID
		if cp.Supplier != nil {
			row.Supplier = &models.Supplier{
				Name:      cp.Supplier.Name,
				Phone:     cp.Supplier.Phone,
				Address:   cp.Supplier.Address,
				GSTNumber: cp.Supplier.GSTNumber,
				Email:     cp.Supplier.Email,
			}
		}
	}

	if t.MarketRates != nil {
		rates := make(map[string]int64, len(t.MarketRates.Rates))
		for p, r := range t.MarketRates.Rates {
			rates[string(p)] = r.Minor()
		}
		row.MarketRates = &models.RatesSnapshot{Rates: rates, Source: t.MarketRates.Source, FetchedAt: t.MarketRates.FetchedAt}
	}

	items := make([]models.MetalTransactionItem, len(t.Items))
	for i, it := range t.Items {
		items[i] = models.MetalTransactionItem{
			TransactionID:     t.TransactionID,
			Position:          int32(i),
			ItemName:          it.ItemName,
			Description:       it.Description,
			Purity:            string(it.Purity),
			Weight:            it.Weight.Decimal(),
			RatePerGram:       it.RatePerGram.Minor(),
			MakingCharges:     it.MakingCharges.Minor(),
			WastagePercent:    it.WastagePercent,
			Tax:               it.Tax.Minor(),
			Total:             it.Total.Minor(),
			Photos:            it.Photos,
			HallmarkNumber:    it.HallmarkNumber,
			CertificateNumber: it.CertificateNumber,
		}
	}
	return row, items
}

// ToDomainMetalTransaction joins a header row with its item rows, which must already be in position order.
func ToDomainMetalTransaction(row models.MetalTransaction, items []models.MetalTransactionItem) domain.MetalTransaction {
	t := domain.MetalTransaction{
		TransactionID:   row.TransactionID,
		Metal:           domain.Metal(row.Metal),
		TransactionType: domain.TransactionType(row.TransactionType),
		TotalWeight:     domain.NewGrams(row.TotalWeight),
		Subtotal:        domain.Money(row.Subtotal),
		Total:           domain.Money(row.Total),
		AdvancePaid:     domain.Money(row.AdvancePaid),
		Remaining:       domain.Money(row.Remaining),
		PaymentStatus:   domain.PaymentStatus(row.PaymentStatus),
		PaymentMode:     domain.PaymentMode(row.PaymentMode),
		InvoiceNumber:   row.InvoiceNumber,
		BillNumber:      row.BillNumber,
		Notes:           row.Notes,
		LedgerEntryID:   row.LedgerEntryID,
		AuditFields:     ToDomainAuditFields(row.AuditFields),
	}

	if row.CounterpartyRole != nil {
		cp := &domain.Counterparty{
			Role:       domain.CounterpartyRole(*row.CounterpartyRole),
			CustomerID: row.CustomerID,
		}
		if row.CounterpartyName != nil {
			cp.DisplayName = *row.CounterpartyName
		}
		if s := row.Supplier; s != nil {
			cp.Supplier = &domain.SupplierDetails{
				Name:      s.Name,
				Phone:     s.Phone,
				Address:   s.Address,
				GSTNumber: s.GSTNumber,
				Email:     s.Email,
			}
		}
		t.Counterparty = cp
	}

	if row.MarketRates != nil {
		rates := make(map[domain.Purity]domain.Money, len(row.MarketRates.Rates))
		for p, r := range row.MarketRates.Rates {
			rates[domain.Purity(p)] = domain.Money(r)
		}
		t.MarketRates = &domain.MarketRatesSnapshot{Rates: rates, Source: row.MarketRates.Source, FetchedAt: row.MarketRates.FetchedAt}
	}

	t.Items = make([]domain.LineItem, len(items))
	for i, it := range items {
		t.Items[i] = domain.LineItem{
			ItemName:          it.ItemName,
			Description:       it.Description,
			Purity:            domain.Purity(it.Purity),
			Weight:            domain.NewGrams(it.Weight),
			RatePerGram:       domain.Money(it.RatePerGram),
			MakingCharges:     domain.Money(it.MakingCharges),
			WastagePercent:    it.WastagePercent,
			Tax:               domain.Money(it.Tax),
			Total:             domain.Money(it.Total),
			Photos:            it.Photos,
			HallmarkNumber:    it.HallmarkNumber,
			CertificateNumber: it.CertificateNumber,
		}
	}
	return t
}
