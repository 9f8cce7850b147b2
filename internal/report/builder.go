package report

import (
	"strconv"

	"github.com/hmshaban/jard-backend/internal/engine"
	"github.com/hmshaban/jard-backend/internal/reconcile"
)

// Table is a rendered report: fixed columns plus localized string cells.
type Table struct {
	Name    string     `json:"name"`
	Columns []Column   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// Names lists every table BuildAll produces, in presentation order.
func Names() []string {
	return []string{
		NameNetPurchases, NameNetSales, NamePhysical, NameEnding,
		NameExcess, NameSalesCost, NameProfitability, NameABC,
		NameTurnover, NameReplenishment, NamePayables, NameItems,
	}
}

// BuildAll renders every report table from a run result.
func BuildAll(result *engine.Result) map[string]Table {
	return map[string]Table{
		NameNetPurchases:  BuildNetPurchases(result),
		NameNetSales:      BuildNetSales(result),
		NamePhysical:      BuildPhysical(result),
		NameEnding:        BuildEnding(result),
		NameExcess:        BuildExcess(result),
		NameSalesCost:     BuildSalesCost(result),
		NameProfitability: BuildProfitability(result),
		NameABC:           BuildABC(result),
		NameTurnover:      BuildTurnover(result),
		NameReplenishment: BuildReplenishment(result),
		NamePayables:      BuildPayables(result),
		NameItems:         BuildItems(result),
	}
}

func BuildNetPurchases(result *engine.Result) Table {
	t := Table{Name: NameNetPurchases, Columns: NetPurchasesColumns, Rows: [][]string{}}
	for _, row := range result.NetPurchases {
		t.Rows = append(t.Rows, []string{
			strconv.Itoa(row.Seq),
			row.MaterialCode,
			row.MaterialName,
			row.Unit,
			FormatQuantity(row.Quantity),
			FormatMoney(row.UnitPrice),
			FormatMoney(row.Total()),
			FormatDate(row.ExpiryDate),
			row.Supplier,
			FormatDate(row.OperationDate),
			Label(string(row.OperationType)),
			row.RecordNumber,
			FormatQuantity(row.ReturnedQty),
			FormatQuantity(row.SoldQty),
			FormatQuantity(row.CountQty),
			row.List,
			Label(row.Notes),
		})
	}
	return t
}

func BuildNetSales(result *engine.Result) Table {
	t := Table{Name: NameNetSales, Columns: NetSalesColumns, Rows: [][]string{}}
	for _, row := range result.NetSales {
		t.Rows = append(t.Rows, []string{
			strconv.Itoa(row.Seq),
			row.MaterialCode,
			row.MaterialName,
			row.Unit,
			FormatQuantity(row.Quantity),
			FormatMoney(row.UnitPrice),
			FormatMoney(row.Total()),
			FormatDate(row.OperationDate),
			Label(string(row.OperationType)),
			row.RecordNumber,
			FormatQuantity(row.ReturnedQty),
			row.List,
			Label(row.Notes),
		})
	}
	return t
}

func BuildPhysical(result *engine.Result) Table {
	t := Table{Name: NamePhysical, Columns: PhysicalColumns, Rows: [][]string{}}
	for _, row := range result.PhysicalCounted {
		t.Rows = append(t.Rows, physicalCells(row.Seq, row.MaterialCode, row.MaterialName, row.Unit,
			FormatQuantity(row.Quantity), FormatMoney(row.UnitPrice), FormatDate(row.ExpiryDate),
			row.RecordNumber, row.List, Label(row.Notes)))
	}
	for _, row := range result.PhysicalAdjustments {
		t.Rows = append(t.Rows, physicalCells(row.Seq, row.MaterialCode, row.MaterialName, row.Unit,
			FormatQuantity(row.Quantity), FormatMoney(row.UnitPrice), FormatDate(row.ExpiryDate),
			row.RecordNumber, row.List, Label(row.Notes)))
	}
	return t
}

func physicalCells(seq int, cells ...string) []string {
	return append([]string{strconv.Itoa(seq)}, cells...)
}

func BuildEnding(result *engine.Result) Table {
	t := Table{Name: NameEnding, Columns: EndingInventoryColumns, Rows: [][]string{}}
	for _, row := range result.EndingInventory {
		t.Rows = append(t.Rows, endingCells(row))
	}
	for _, row := range result.EndingUnproven {
		t.Rows = append(t.Rows, endingCells(row))
	}
	return t
}

func endingCells(row *reconcile.EndingRow) []string {
	return []string{
		strconv.Itoa(row.Seq),
		row.MaterialCode,
		row.MaterialName,
		row.Unit,
		FormatQuantity(row.Quantity),
		FormatMoney(row.UnitPrice),
		FormatMoney(row.Total),
		FormatDate(row.ExpiryDate),
		row.Supplier,
		FormatDate(row.PurchaseDate),
		FormatDate(row.OperationDate),
		Label(string(row.OperationType)),
		FormatAge(row.AgeDays),
		FormatQuantity(row.SoldQty),
		FormatQuantity(row.IdealQty),
		FormatQuantity(row.SurplusQty),
		FormatQuantity(row.ReturnPreparedQty),
		FormatQuantity(row.NewItemQty),
		FormatQuantity(row.NeedQty),
		FormatPercent(row.SurplusPercent),
		Label(string(row.ExpiryStatus)),
		Label(string(row.MovementStatus)),
		Label(row.Condition),
		Label(row.FinalStatement),
		FormatMoney(row.IdealValue),
		FormatMoney(row.SurplusValue),
		FormatMoney(row.ReturnPreparedValue),
		FormatMoney(row.NewItemValue),
		FormatMoney(row.NeedValue),
		row.List,
		row.RecordNumber,
		Label(row.Notes),
	}
}

func BuildExcess(result *engine.Result) Table {
	t := Table{Name: NameExcess, Columns: ExcessColumns, Rows: [][]string{}}
	for _, row := range result.Excess {
		t.Rows = append(t.Rows, []string{
			strconv.Itoa(row.Seq),
			row.MaterialCode,
			row.MaterialName,
			row.Unit,
			FormatQuantity(row.OnHandQty),
			FormatQuantity(row.SoldQty),
			FormatQuantity(row.IdealQty),
			FormatQuantity(row.SurplusQty),
			FormatQuantity(row.NeedQty),
			FormatMoney(row.SurplusValue),
			FormatMoney(row.NeedValue),
			Label(string(row.Status)),
		})
	}
	return t
}

func BuildSalesCost(result *engine.Result) Table {
	t := Table{Name: NameSalesCost, Columns: SalesCostColumns, Rows: [][]string{}}
	for _, row := range result.SalesCost {
		t.Rows = append(t.Rows, []string{
			strconv.Itoa(row.Seq),
			row.MaterialCode,
			row.MaterialName,
			row.Unit,
			FormatQuantity(row.Quantity),
			FormatMoney(row.SalePrice),
			FormatMoney(row.SaleTotal),
			FormatMoney(row.UnitCost),
			FormatMoney(row.CostTotal),
			FormatMoney(row.Profit),
			FormatPercent(row.MarginPercent),
			FormatDate(row.OperationDate),
			Label(row.Statement),
		})
	}
	return t
}

func BuildProfitability(result *engine.Result) Table {
	t := Table{Name: NameProfitability, Columns: ProfitabilityColumns, Rows: [][]string{}}
	for _, row := range result.Profitability {
		t.Rows = append(t.Rows, []string{
			strconv.Itoa(row.Seq),
			row.MaterialCode,
			row.MaterialName,
			row.Unit,
			FormatQuantity(row.SoldQty),
			FormatMoney(row.Revenue),
			FormatMoney(row.Cost),
			FormatMoney(row.Profit),
			FormatPercent(row.MarginPercent),
			FormatPercent(row.ContributionPercent),
		})
	}
	return t
}

func BuildABC(result *engine.Result) Table {
	t := Table{Name: NameABC, Columns: ABCColumns, Rows: [][]string{}}
	for _, row := range result.ABC {
		t.Rows = append(t.Rows, []string{
			strconv.Itoa(row.Seq),
			row.MaterialCode,
			row.MaterialName,
			FormatMoney(row.Value),
			FormatPercent(row.ValuePercent),
			FormatPercent(row.CumulativePercent),
			string(row.Class),
		})
	}
	return t
}

func BuildTurnover(result *engine.Result) Table {
	t := Table{Name: NameTurnover, Columns: TurnoverColumns, Rows: [][]string{}}
	for _, row := range result.Turnover {
		t.Rows = append(t.Rows, []string{
			strconv.Itoa(row.Seq),
			row.MaterialCode,
			row.MaterialName,
			row.Unit,
			FormatQuantity(row.SoldQty),
			FormatQuantity(row.OnHandQty),
			FormatQuantity(row.AvgInventory),
			FormatQuantity(row.TurnoverRate),
			FormatQuantity(row.DaysOfSupply),
		})
	}
	return t
}

func BuildReplenishment(result *engine.Result) Table {
	t := Table{Name: NameReplenishment, Columns: ReplenishmentColumns, Rows: [][]string{}}
	for _, row := range result.Replenishment {
		t.Rows = append(t.Rows, []string{
			strconv.Itoa(row.Seq),
			row.MaterialCode,
			row.MaterialName,
			row.Unit,
			FormatQuantity(row.OnHandQty),
			FormatQuantity(row.WindowSoldQty),
			FormatQuantity(row.AvgDailyQty),
			FormatQuantity(row.CoverDays),
			FormatQuantity(row.IdealQty),
			FormatQuantity(row.GapQty),
			Label(string(row.Urgency)),
			row.Supplier,
			FormatMoney(row.UnitPrice),
			FormatMoney(row.GapValue),
		})
	}
	return t
}

func BuildPayables(result *engine.Result) Table {
	t := Table{Name: NamePayables, Columns: PayablesColumns, Rows: [][]string{}}
	for _, row := range result.SupplierPayables {
		t.Rows = append(t.Rows, []string{
			strconv.Itoa(row.Seq),
			row.AccountCode,
			row.Supplier,
			row.SubAccount,
			FormatMoney(row.Debit),
			FormatMoney(row.Credit),
			FormatMoney(row.Balance),
			FormatMoney(row.InventoryValue),
			FormatMoney(row.SurplusValue),
			FormatMoney(row.ExpiryRiskValue),
			FormatMoney(row.ReturnPreparedValue),
			FormatMoney(row.NewItemValue),
			FormatMoney(row.Payable),
			FormatMoney(row.AmountDue),
		})
	}
	return t
}

func BuildItems(result *engine.Result) Table {
	t := Table{Name: NameItems, Columns: ItemsColumns, Rows: [][]string{}}
	for i, row := range result.Items {
		t.Rows = append(t.Rows, []string{
			strconv.Itoa(i + 1),
			row.MaterialCode,
			row.MaterialName,
			row.Unit,
			FormatQuantity(row.PurchasedQty),
			FormatQuantity(row.PurchaseReturnQty),
			FormatQuantity(row.SoldQty),
			FormatQuantity(row.SaleReturnQty),
			FormatQuantity(row.ExpectedQty),
			FormatQuantity(row.PhysicalQty),
			FormatQuantity(row.DeltaQty),
			FormatQuantity(row.SurplusQty),
			FormatMoney(row.SurplusValue),
			FormatQuantity(row.NeedQty),
			FormatMoney(row.NeedValue),
			Label(string(row.Status)),
		})
	}
	return t
}
