package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/bitfantasy/nimo-fab/internal/oms/service"
)

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// printOrderTable 看板列表按列对齐输出
func printOrderTable(w io.Writer, orders []service.OrderSummary) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ISSUE DATE\tJO\tCLIENT\tCLIENT PO\tREQUIRED\tDO\tSTATUS\tCOMPLETED")
	for _, o := range orders {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			o.IssueDate, o.JONumber, o.ClientCode, o.ClientPOList,
			o.RequiredDate, o.DOClientNumber, o.Status, o.CompleteDate)
	}
	return tw.Flush()
}
