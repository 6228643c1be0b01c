package i18n

// Catalog keys are dotted paths. Plural forms use the _one / _other suffixes.

var catalogEs = map[string]string{
	"header.title":       "Informe de Gastos",
	"header.subtitle":    "Genere y gestione sus envíos de gastos de empleado.",
	"header.toggleTheme": "Cambiar tema",
	"header.save":        "Guardar",
	"header.saveTooltip": "Guardar el informe en este equipo",
	"header.export":      "Exportar a CSV",

	"summary.totalExpense": "Gasto Total",

	"filters.search":            "Buscar",
	"filters.searchPlaceholder": "Buscar por descripción, factura...",
	"filters.category":          "Categoría",
	"filters.allCategories":     "Todas",
	"filters.status":            "Estado",
	"filters.allStatuses":       "Todos",
	"filters.clear":             "Limpiar Filtros",
	"filters.dateRange":         "Rango de Fechas",

	"table.date":          "Fecha",
	"table.description":   "Descripción",
	"table.category":      "Categoría",
	"table.invoiceNumber": "Nº Factura",
	"table.amount":        "Monto",
	"table.status":        "Estado",
	"table.receipt":       "Factura",
	"table.noExpenses":    "No hay gastos registrados.",
	"table.addExpense":    "Añadir Gasto",

	"bulkActions.selected_one":   "{{count}} gasto seleccionado",
	"bulkActions.selected_other": "{{count}} gastos seleccionados",
	"bulkActions.approve":        "Aprobar",
	"bulkActions.reject":         "Rechazar",
	"bulkActions.delete":         "Eliminar",

	"dashboard.approvedTotal":         "Gasto Total Aprobado",
	"dashboard.pendingTotal":          "Gastos Pendientes",
	"dashboard.receiptPercentage":     "% de Gastos con Factura",
	"dashboard.receiptPercentageDesc": "{{receiptCount}} de {{totalCount}} gastos tienen factura",
	"dashboard.noReceipt":             "Gastos sin Factura",
	"dashboard.monthlyTrend":          "Evolución Mensual de Gastos (Aprobados)",
	"dashboard.topExpenses":           "Top 5 Gastos de Mayor Valor",
	"dashboard.noApprovedData":        "No hay datos de gastos aprobados para mostrar.",

	"projectionDashboard.monthlyBudgetLabel":  "Presupuesto Mensual",
	"projectionDashboard.avgSpendLabel":       "Gasto Mensual Promedio (Últimos 6M)",
	"projectionDashboard.trendLabel":          "Tendencia Mensual",
	"projectionDashboard.projectedSpendLabel": "Gasto Total Proyectado (Próximos 3M)",
	"projectionDashboard.increase":            "Aumento",
	"projectionDashboard.decrease":            "Disminución",
	"projectionDashboard.stable":              "Estable",
	"projectionDashboard.noData":              "Datos insuficientes para la proyección.",
	"projectionDashboard.tooltipBudget":       "Presupuesto Mensual: {{amount}}",

	"modals.bulkDelete.message": "¿Está seguro de que desea eliminar los {{count}} gastos seleccionados?",

	"notifications.saveSuccess":   "Informe guardado con éxito.",
	"notifications.saveError":     "Error al guardar el informe.",
	"notifications.fileSizeError": "El archivo supera el tamaño máximo de 5MB.",
	"notifications.fileTypeError": "Formato no permitido. Use JPG, PNG o PDF.",
	"notifications.fileReadError": "Error al leer el archivo.",
	"notifications.notFound":      "El gasto ya no existe.",
	"notifications.invalidInput":  "Datos no válidos.",

	"categories.Travel":    "Viajes",
	"categories.Meals":     "Comidas",
	"categories.Supplies":  "Suministros",
	"categories.Transport": "Transporte",
	"categories.Lodging":   "Alojamiento",
	"categories.Other":     "Otros",

	"statuses.Pending":  "Pendiente",
	"statuses.Approved": "Aprobado",
	"statuses.Rejected": "Rechazado",

	"csv.date":            "Fecha",
	"csv.description":     "Descripción",
	"csv.category":        "Categoría",
	"csv.invoiceNumber":   "Número de Factura",
	"csv.amount":          "Monto",
	"csv.status":          "Estado",
	"csv.receiptAttached": "Factura Adjunta",
	"csv.yes":             "Sí",
	"csv.no":              "No",

	"monthsShort.1": "Ene", "monthsShort.2": "Feb", "monthsShort.3": "Mar",
	"monthsShort.4": "Abr", "monthsShort.5": "May", "monthsShort.6": "Jun",
	"monthsShort.7": "Jul", "monthsShort.8": "Ago", "monthsShort.9": "Sep",
	"monthsShort.10": "Oct", "monthsShort.11": "Nov", "monthsShort.12": "Dic",
}

var catalogEn = map[string]string{
	"header.title":       "Expense Report",
	"header.subtitle":    "Generate and manage your employee expense submissions.",
	"header.toggleTheme": "Toggle theme",
	"header.save":        "Save",
	"header.saveTooltip": "Save the report on this machine",
	"header.export":      "Export to CSV",

	"summary.totalExpense": "Total Expense",

	"filters.search":            "Search",
	"filters.searchPlaceholder": "Search by description, invoice...",
	"filters.category":          "Category",
	"filters.allCategories":     "All",
	"filters.status":            "Status",
	"filters.allStatuses":       "All",
	"filters.clear":             "Clear Filters",
	"filters.dateRange":         "Date Range",

	"table.date":          "Date",
	"table.description":   "Description",
	"table.category":      "Category",
	"table.invoiceNumber": "Invoice #",
	"table.amount":        "Amount",
	"table.status":        "Status",
	"table.receipt":       "Receipt",
	"table.noExpenses":    "No expenses recorded.",
	"table.addExpense":    "Add Expense",

	"bulkActions.selected_one":   "{{count}} expense selected",
	"bulkActions.selected_other": "{{count}} expenses selected",
	"bulkActions.approve":        "Approve",
	"bulkActions.reject":         "Reject",
	"bulkActions.delete":         "Delete",

	"dashboard.approvedTotal":         "Total Approved Spend",
	"dashboard.pendingTotal":          "Pending Expenses",
	"dashboard.receiptPercentage":     "% of Expenses with Receipt",
	"dashboard.receiptPercentageDesc": "{{receiptCount}} of {{totalCount}} expenses have a receipt",
	"dashboard.noReceipt":             "Expenses without Receipt",
	"dashboard.monthlyTrend":          "Monthly Expense Trend (Approved)",
	"dashboard.topExpenses":           "Top 5 Highest Value Expenses",
	"dashboard.noApprovedData":        "No approved expense data to display.",

	"projectionDashboard.monthlyBudgetLabel":  "Monthly Budget",
	"projectionDashboard.avgSpendLabel":       "Avg. Monthly Spend (Last 6M)",
	"projectionDashboard.trendLabel":          "Monthly Trend",
	"projectionDashboard.projectedSpendLabel": "Total Projected Spend (Next 3M)",
	"projectionDashboard.increase":            "Increase",
	"projectionDashboard.decrease":            "Decrease",
	"projectionDashboard.stable":              "Stable",
	"projectionDashboard.noData":              "Insufficient data for projection.",
	"projectionDashboard.tooltipBudget":       "Monthly Budget: {{amount}}",

	"modals.bulkDelete.message": "Are you sure you want to delete the selected {{count}} expenses?",

	"notifications.saveSuccess":   "Report saved successfully.",
	"notifications.saveError":     "Error saving the report.",
	"notifications.fileSizeError": "File exceeds the 5MB size limit.",
	"notifications.fileTypeError": "Invalid format. Use JPG, PNG, or PDF.",
	"notifications.fileReadError": "Error reading the file.",
	"notifications.notFound":      "The expense no longer exists.",
	"notifications.invalidInput":  "Invalid input.",

	"categories.Travel":    "Travel",
	"categories.Meals":     "Meals",
	"categories.Supplies":  "Supplies",
	"categories.Transport": "Transport",
	"categories.Lodging":   "Lodging",
	"categories.Other":     "Other",

	"statuses.Pending":  "Pending",
	"statuses.Approved": "Approved",
	"statuses.Rejected": "Rejected",

	"csv.date":            "Date",
	"csv.description":     "Description",
	"csv.category":        "Category",
	"csv.invoiceNumber":   "Invoice Number",
	"csv.amount":          "Amount",
	"csv.status":          "Status",
	"csv.receiptAttached": "Receipt Attached",
	"csv.yes":             "Yes",
	"csv.no":              "No",

	"monthsShort.1": "Jan", "monthsShort.2": "Feb", "monthsShort.3": "Mar",
	"monthsShort.4": "Apr", "monthsShort.5": "May", "monthsShort.6": "Jun",
	"monthsShort.7": "Jul", "monthsShort.8": "Aug", "monthsShort.9": "Sep",
	"monthsShort.10": "Oct", "monthsShort.11": "Nov", "monthsShort.12": "Dec",
}
