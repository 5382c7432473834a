package sales

import (
	"context"
	"fmt"
	"strings"

	"github.com/weslleycarlos/representacao-comercial/internal/application/ports"
	"github.com/weslleycarlos/representacao-comercial/internal/domain"
	"github.com/weslleycarlos/representacao-comercial/internal/domain/entity"
)

// Document resolve nomes e descrições do pedido para e-mail e PDF.
func (uc *OrderUseCase) Document(ctx context.Context, order *entity.Order) (*ports.OrderDocument, error) {
	company, err := uc.repos.Companies.GetByID(ctx, order.OrganizationID, order.CompanyID)
	if err != nil {
		return nil, err
	}
	customer, err := uc.repos.Customers.GetByID(ctx, order.OrganizationID, order.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.NotFound("cliente")
	}
	seller, err := uc.repos.Users.GetByID(ctx, order.SellerID)
	if err != nil {
		return nil, err
	}

	doc := &ports.OrderDocument{
		OrderID:         order.ID,
		Number:          order.Number,
		IssuedAt:        order.CreatedAt,
		Status:          order.Status,
		CustomerName:    customer.LegalName,
		CustomerTaxID:   customer.TaxID,
		Subtotal:        order.Subtotal,
		DiscountPercent: order.DiscountPercent,
		Total:           order.Total,
		Notes:           order.Notes,
	}
	if company != nil {
		doc.CompanyName = company.Name
	}
	if seller != nil {
		doc.SellerName, doc.SellerEmail = seller.FullName, seller.Email
	}
	if order.PaymentMethodID != nil {
		pm, err := uc.repos.PaymentMethods.GetVisible(ctx, order.OrganizationID, *order.PaymentMethodID)
		if err != nil {
			return nil, err
		}
		if pm != nil {
			doc.PaymentMethod = pm.Name
		}
	}
	if order.DeliveryAddressID != nil {
		for _, a := range customer.Addresses {
			if a.ID == *order.DeliveryAddressID {
				doc.DeliveryAddress = formatAddress(a)
			}
		}
	}

	products := map[string]*entity.Product{}
	for _, it := range order.Items {
		p, ok := products[it.ProductID]
		if !ok {
			if p, err = uc.repos.Products.GetByID(ctx, order.OrganizationID, it.ProductID); err != nil {
				return nil, err
			}
			products[it.ProductID] = p
		}
		line := ports.OrderDocumentItem{
			Quantity:        it.Quantity,
			UnitPrice:       it.UnitPrice,
			DiscountPercent: it.DiscountPercent,
			LineTotal:       it.LineTotal,
		}
		if p != nil {
			line.Code, line.Description = p.Code, p.Description
			if it.VariantID != nil {
				for _, v := range p.Variants {
					if v.ID == *it.VariantID {
						line.Variant = variantLabel(v)
					}
				}
			}
		}
		doc.Items = append(doc.Items, line)
	}
	return doc, nil
}

func variantLabel(v entity.Variant) string {
	parts := make([]string, 0, 2)
	for _, s := range []string{v.Size, v.Color} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " / ")
}

func formatAddress(a entity.Address) string {
	s := fmt.Sprintf("%s, %s", a.Street, a.Number)
	if a.Complement != "" {
		s += " " + a.Complement
	}
	if a.District != "" {
		s += " - " + a.District
	}
	return fmt.Sprintf("%s - %s/%s - CEP %s", s, a.City, a.State, a.PostalCode)
}
