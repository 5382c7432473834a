// Package sales implementa o ciclo do pedido: criação e edição pelo vendedor,
// transições de status pelo gestor, snapshot de comissão, e-mail e PDF.
package sales

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/weslleycarlos/representacao-comercial/internal/application/audit"
	"github.com/weslleycarlos/representacao-comercial/internal/application/dto"
	"github.com/weslleycarlos/representacao-comercial/internal/application/ports"
	"github.com/weslleycarlos/representacao-comercial/internal/domain"
	"github.com/weslleycarlos/representacao-comercial/internal/domain/commission"
	"github.com/weslleycarlos/representacao-comercial/internal/domain/entity"
	"github.com/weslleycarlos/representacao-comercial/internal/domain/orderflow"
	"github.com/weslleycarlos/representacao-comercial/internal/domain/pricing"
	"github.com/weslleycarlos/representacao-comercial/internal/domain/repository"
	"github.com/weslleycarlos/representacao-comercial/internal/domain/tenant"
)

const (
	defaultPage = 50
	maxPage     = 500
)

// ErrCustomerWithoutEmail reenvio pedido para cliente sem e-mail.
var ErrCustomerWithoutEmail = fmt.Errorf("cliente não possui e-mail cadastrado: %w", domain.ErrInvalidInput)

// OrderUseCase casos de uso de pedido.
type OrderUseCase struct {
	repos    ports.Repos
	tx       ports.TxRunner
	notifier ports.Notifier
	pdf      ports.OrderPDFGenerator
	docs     ports.DocumentStore // opcional: arquiva os PDFs emitidos
}

// NewOrderUseCase constrói o caso de uso. docs pode ser nil.
func NewOrderUseCase(repos ports.Repos, tx ports.TxRunner, notifier ports.Notifier, pdf ports.OrderPDFGenerator, docs ports.DocumentStore) *OrderUseCase {
	return &OrderUseCase{repos: repos, tx: tx, notifier: notifier, pdf: pdf, docs: docs}
}

// Create precifica e grava o pedido na empresa ativa do vendedor. Pedido, itens, histórico inicial,
// comissão e auditoria vão numa única transação; o e-mail de confirmação é enfileirado depois.
func (uc *OrderUseCase) Create(ctx context.Context, tc tenant.Context, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	companyID, err := tc.Seller()
	if err != nil {
		return nil, err
	}

	// ── 1. Referências ──
	customer, err := uc.repos.Customers.GetByID(ctx, tc.OrganizationID, in.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.NotFound("cliente")
	}
	for _, addrID := range []*string{in.DeliveryAddressID, in.BillingAddressID} {
		if addrID != nil && !hasAddress(customer, *addrID) {
			return nil, fmt.Errorf("endereço %s não pertence ao cliente: %w", *addrID, domain.ErrInvalidReference)
		}
	}
	if in.PaymentMethodID != nil {
		pm, err := uc.repos.PaymentMethods.GetVisible(ctx, tc.OrganizationID, *in.PaymentMethodID)
		if err != nil {
			return nil, err
		}
		if pm == nil || !pm.IsActive {
			return nil, domain.NotFound("forma de pagamento")
		}
	}
	catalog, err := uc.repos.Catalogs.GetByID(ctx, tc.OrganizationID, in.CatalogID)
	if err != nil {
		return nil, err
	}
	if catalog == nil || catalog.CompanyID != companyID || !catalog.IsActive {
		return nil, domain.NotFound("catálogo")
	}

	lines := make([]pricing.LineRequest, len(in.Items))
	for i, it := range in.Items {
		lines[i] = pricing.LineRequest{ProductID: it.ProductID, VariantID: it.VariantID, Quantity: it.Quantity, DiscountPercent: it.DiscountPercent}
	}

	now := time.Now().UTC()
	order := &entity.Order{
		ID:                uuid.New().String(),
		OrganizationID:    tc.OrganizationID,
		CompanyID:         companyID,
		SellerID:          tc.UserID,
		CustomerID:        customer.ID,
		CatalogID:         catalog.ID,
		DeliveryAddressID: in.DeliveryAddressID,
		BillingAddressID:  in.BillingAddressID,
		PaymentMethodID:   in.PaymentMethodID,
		Status:            entity.OrderPending,
		Notes:             strings.TrimSpace(in.Notes),
		Version:           1,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	err = uc.tx.Run(ctx, func(r ports.Repos) error {
		// ── 2. Precificação ──
		quote, err := pricing.NewEngine(r.Catalogs, r.Products).PriceOrder(ctx, catalog.ID, lines, in.DiscountPercent)
		if err != nil {
			return err
		}
		applyQuote(order, quote)

		// ── 3. Pedido e itens ──
		if order.Number, err = r.Orders.NextNumber(ctx, companyID); err != nil {
			return err
		}
		if err := r.Orders.Create(ctx, order); err != nil {
			return err
		}
		if err := r.Orders.AddStatusHistory(ctx, &entity.OrderStatusHistory{
			ID:        uuid.New().String(),
			OrderID:   order.ID,
			ToStatus:  entity.OrderPending,
			Note:      "Pedido criado",
			ChangedBy: tc.UserID,
			ChangedAt: now,
		}); err != nil {
			return err
		}

		// ── 4. Comissão ──
		res, err := commission.NewResolver(r.CommissionRules, r.Companies).Resolve(ctx, tc.OrganizationID, companyID, tc.UserID, now)
		if err != nil {
			return err
		}
		if err := r.Orders.SaveCommission(ctx, &entity.OrderCommission{
			ID:        uuid.New().String(),
			OrderID:   order.ID,
			SellerID:  tc.UserID,
			RuleID:    res.RuleID,
			Percent:   res.Percent,
			Amount:    commission.Amount(order.Total, res.Percent),
			CreatedAt: now,
		}); err != nil {
			return err
		}

		// ── 5. Auditoria ──
		var d audit.Diff
		d.Set("nr_pedido", order.Number)
		d.Set("cliente", customer.ID)
		d.Set("total", order.Total)
		return audit.Record(ctx, r.Audit, tc, entity.AuditCreate, "pedido", order.ID, d)
	})
	if err != nil {
		return nil, err
	}

	log.Info().Str("order_id", order.ID).Str("number", order.Number).Str("total", order.Total.StringFixed(2)).Msg("pedido criado")
	uc.queueConfirmation(ctx, order, customer)
	return uc.response(ctx, order)
}

// ListOwn pedidos do vendedor na empresa ativa, mais recentes primeiro.
func (uc *OrderUseCase) ListOwn(ctx context.Context, tc tenant.Context, page dto.PageRequest) (*dto.OrderListResponse, error) {
	companyID, err := tc.Seller()
	if err != nil {
		return nil, err
	}
	page.DefaultPage(defaultPage, maxPage)
	return uc.list(ctx, repository.OrderFilter{
		OrganizationID: tc.OrganizationID,
		SellerID:       tc.UserID,
		CompanyID:      companyID,
		Limit:          page.Limit,
		Offset:         page.Offset,
	}, page)
}

// GetOwn pedido do próprio vendedor na empresa ativa; qualquer outro é 404.
func (uc *OrderUseCase) GetOwn(ctx context.Context, tc tenant.Context, id string) (*dto.OrderResponse, error) {
	order, err := uc.ownOrder(ctx, tc, id)
	if err != nil {
		return nil, err
	}
	return uc.response(ctx, order)
}

// UpdatePending altera desconto e observações de pedido pendente. Os totais são recalculados
// a partir dos preços gravados nos itens e o valor da comissão acompanha o novo total.
func (uc *OrderUseCase) UpdatePending(ctx context.Context, tc tenant.Context, id string, in dto.UpdateOrderRequest) (*dto.OrderResponse, error) {
	order, err := uc.ownOrder(ctx, tc, id)
	if err != nil {
		return nil, err
	}
	if !orderflow.Editable(order.Status) {
		return nil, fmt.Errorf("pedido %s não pode ser editado: %w", order.Status, domain.ErrForbidden)
	}
	if order.Version != in.Version {
		return nil, domain.ErrConflict
	}

	var d audit.Diff
	discount := order.DiscountPercent
	if in.DiscountPercent != nil {
		if err := pricing.ValidatePercent("discount_percent", *in.DiscountPercent); err != nil {
			return nil, err
		}
		discount = *in.DiscountPercent
	}
	if in.Notes != nil {
		d.Add("observacoes", order.Notes, strings.TrimSpace(*in.Notes))
		order.Notes = strings.TrimSpace(*in.Notes)
	}
	quote := pricing.Reprice(snapshotLines(order.Items), discount)
	d.Add("pc_desconto", order.DiscountPercent, quote.DiscountPercent)
	d.Add("total", order.Total, quote.Total)
	order.DiscountPercent, order.Subtotal, order.Total = quote.DiscountPercent, quote.Subtotal, quote.Total
	order.UpdatedAt = time.Now().UTC()

	err = uc.tx.Run(ctx, func(r ports.Repos) error {
		if err := r.Orders.UpdatePricing(ctx, order, in.Version); err != nil {
			return err
		}
		snap, err := r.Orders.GetCommission(ctx, order.ID)
		if err != nil {
			return err
		}
		if snap != nil {
			snap.Amount = commission.Amount(order.Total, snap.Percent)
			if err := r.Orders.SaveCommission(ctx, snap); err != nil {
				return err
			}
		}
		if d.Empty() {
			return nil
		}
		return audit.Record(ctx, r.Audit, tc, entity.AuditUpdate, "pedido", order.ID, d)
	})
	if err != nil {
		return nil, err
	}
	return uc.response(ctx, order)
}

// Cancel cancela o próprio pedido pela máquina de estados, registrando o motivo.
func (uc *OrderUseCase) Cancel(ctx context.Context, tc tenant.Context, id string, in dto.CancelOrderRequest) (*dto.OrderResponse, error) {
	order, err := uc.ownOrder(ctx, tc, id)
	if err != nil {
		return nil, err
	}
	if err := uc.transition(ctx, tc, order, entity.OrderCancelled, "Cancelado pelo vendedor: "+strings.TrimSpace(in.Reason), in.Version); err != nil {
		return nil, err
	}
	return uc.response(ctx, order)
}

// ResendConfirmation reenvia o e-mail de confirmação do pedido ao cliente.
func (uc *OrderUseCase) ResendConfirmation(ctx context.Context, tc tenant.Context, id string) error {
	order, err := uc.ownOrder(ctx, tc, id)
	if err != nil {
		return err
	}
	customer, err := uc.repos.Customers.GetByID(ctx, tc.OrganizationID, order.CustomerID)
	if err != nil {
		return err
	}
	if customer == nil || customer.Email == "" {
		return ErrCustomerWithoutEmail
	}
	doc, err := uc.Document(ctx, order)
	if err != nil {
		return err
	}
	return uc.notifier.SendOrderConfirmation(ctx, recipients(customer.Email, doc.SellerEmail), *doc)
}

// PDF gera o espelho do pedido. Com armazenamento configurado, o arquivo também é arquivado.
func (uc *OrderUseCase) PDF(ctx context.Context, tc tenant.Context, id string) ([]byte, string, error) {
	order, err := uc.ownOrder(ctx, tc, id)
	if err != nil {
		return nil, "", err
	}
	doc, err := uc.Document(ctx, order)
	if err != nil {
		return nil, "", err
	}
	content, err := uc.pdf.Render(*doc)
	if err != nil {
		return nil, "", fmt.Errorf("render pdf: %w", err)
	}
	filename := fmt.Sprintf("pedido-%s.pdf", doc.DisplayNumber())
	if uc.docs != nil {
		key := fmt.Sprintf("pedidos/%s/%s/%s", order.OrganizationID, order.CompanyID, filename)
		if _, err := uc.docs.Put(ctx, key, "application/pdf", bytes.NewReader(content)); err != nil {
			log.Warn().Err(err).Str("order_id", order.ID).Msg("falha ao arquivar PDF do pedido")
		}
	}
	return content, filename, nil
}

// ownOrder pedido do vendedor autenticado na empresa ativa.
func (uc *OrderUseCase) ownOrder(ctx context.Context, tc tenant.Context, id string) (*entity.Order, error) {
	companyID, err := tc.Seller()
	if err != nil {
		return nil, err
	}
	order, err := uc.repos.Orders.GetByID(ctx, tc.OrganizationID, id)
	if err != nil {
		return nil, err
	}
	if order == nil || order.SellerID != tc.UserID || order.CompanyID != companyID {
		return nil, domain.NotFound("pedido")
	}
	return order, nil
}

// transition aplica a mudança de status com checagem de versão e grava histórico e auditoria.
func (uc *OrderUseCase) transition(ctx context.Context, tc tenant.Context, order *entity.Order, to, note string, version int) error {
	if err := orderflow.Transition(order.Status, to); err != nil {
		return err
	}
	if order.Version != version {
		return domain.ErrConflict
	}
	from := order.Status
	now := time.Now().UTC()
	err := uc.tx.Run(ctx, func(r ports.Repos) error {
		if err := r.Orders.UpdateStatus(ctx, order.ID, to, version, now); err != nil {
			return err
		}
		if err := r.Orders.AddStatusHistory(ctx, &entity.OrderStatusHistory{
			ID:         uuid.New().String(),
			OrderID:    order.ID,
			FromStatus: &from,
			ToStatus:   to,
			Note:       note,
			ChangedBy:  tc.UserID,
			ChangedAt:  now,
		}); err != nil {
			return err
		}
		var d audit.Diff
		d.Add("st_pedido", from, to)
		if note != "" {
			d.Set("observacao", note)
		}
		return audit.Record(ctx, r.Audit, tc, entity.AuditStatus, "pedido", order.ID, d)
	})
	if err != nil {
		return err
	}
	order.Status, order.Version, order.UpdatedAt = to, version+1, now
	log.Info().Str("order_id", order.ID).Str("from", from).Str("to", to).Msg("status do pedido alterado")
	return nil
}

func (uc *OrderUseCase) queueConfirmation(ctx context.Context, order *entity.Order, customer *entity.Customer) {
	if customer.Email == "" {
		return
	}
	doc, err := uc.Document(ctx, order)
	if err == nil {
		err = uc.notifier.SendOrderConfirmation(ctx, recipients(customer.Email, doc.SellerEmail), *doc)
	}
	if err != nil {
		log.Warn().Err(err).Str("order_id", order.ID).Msg("falha ao enfileirar e-mail de confirmação")
	}
}

func (uc *OrderUseCase) list(ctx context.Context, f repository.OrderFilter, page dto.PageRequest) (*dto.OrderListResponse, error) {
	orders, total, err := uc.repos.Orders.List(ctx, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		items = append(items, *toOrderResponse(o, nil))
	}
	return &dto.OrderListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

func (uc *OrderUseCase) response(ctx context.Context, order *entity.Order) (*dto.OrderResponse, error) {
	snap, err := uc.repos.Orders.GetCommission(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	return toOrderResponse(order, snap), nil
}

func applyQuote(order *entity.Order, q *pricing.Quote) {
	order.DiscountPercent, order.Subtotal, order.Total = q.DiscountPercent, q.Subtotal, q.Total
	order.Items = make([]entity.OrderItem, len(q.Lines))
	for i, l := range q.Lines {
		order.Items[i] = entity.OrderItem{
			ID:              uuid.New().String(),
			OrderID:         order.ID,
			ProductID:       l.ProductID,
			VariantID:       l.VariantID,
			Quantity:        l.Quantity,
			UnitPrice:       l.UnitPrice,
			DiscountPercent: l.DiscountPercent,
			LineTotal:       l.LineTotal.Round(2),
		}
	}
}

// snapshotLines converte os itens gravados de volta em linhas precificadas (sem consultar catálogo).
// O total da linha é refeito a partir dos snapshots para não somar valores já arredondados.
func snapshotLines(items []entity.OrderItem) []pricing.PricedLine {
	lines := make([]pricing.PricedLine, len(items))
	for i, it := range items {
		lines[i] = pricing.PricedLine{
			ProductID:       it.ProductID,
			VariantID:       it.VariantID,
			Quantity:        it.Quantity,
			UnitPrice:       it.UnitPrice,
			DiscountPercent: it.DiscountPercent,
			LineTotal:       pricing.LineTotal(it.UnitPrice, it.Quantity, it.DiscountPercent),
		}
	}
	return lines
}

func hasAddress(c *entity.Customer, id string) bool {
	for _, a := range c.Addresses {
		if a.ID == id {
			return true
		}
	}
	return false
}

func recipients(emails ...string) []string {
	var out []string
	for _, e := range emails {
		if e != "" {
			out = append(out, e)
		}
	}
	return out
}

func toOrderResponse(o *entity.Order, snap *entity.OrderCommission) *dto.OrderResponse {
	items := make([]dto.OrderItemResponse, len(o.Items))
	for i, it := range o.Items {
		items[i] = dto.OrderItemResponse{
			ID:              it.ID,
			ProductID:       it.ProductID,
			VariantID:       it.VariantID,
			Quantity:        it.Quantity,
			UnitPrice:       it.UnitPrice,
			DiscountPercent: it.DiscountPercent,
			LineTotal:       it.LineTotal,
		}
	}
	resp := &dto.OrderResponse{
		ID:                o.ID,
		Number:            o.Number,
		CompanyID:         o.CompanyID,
		SellerID:          o.SellerID,
		CustomerID:        o.CustomerID,
		CatalogID:         o.CatalogID,
		DeliveryAddressID: o.DeliveryAddressID,
		BillingAddressID:  o.BillingAddressID,
		PaymentMethodID:   o.PaymentMethodID,
		DiscountPercent:   o.DiscountPercent,
		Subtotal:          o.Subtotal,
		Total:             o.Total,
		Status:            o.Status,
		Notes:             o.Notes,
		Version:           o.Version,
		Items:             items,
		CreatedAt:         o.CreatedAt,
		UpdatedAt:         o.UpdatedAt,
	}
	if snap != nil {
		resp.Commission = &dto.OrderCommissionResponse{SellerID: snap.SellerID, RuleID: snap.RuleID, Percent: snap.Percent, Amount: snap.Amount}
	}
	return resp
}
