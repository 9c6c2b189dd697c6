package cisapi

const queryDailySalesReport = `
query DailySalesReport($date: CalendarDate!) {
  dailySalesReport(date: $date) {
    date
    totalSalesAmount
    totalCostAmount
    totalProfitAmount
    items {
      productId
      sku
      productName
      quantitySold
      salesAmount
      costAmount
      profitAmount
    }
  }
}`

const queryExpenses = `
query Expenses($filter: ExpenseFilter) {
  expenses(filter: $filter) {
    id
    date
    description
    amount
    paymentMethod
    createdAt
    createdBy
    category {
      id
      name
      active
    }
  }
}`

const queryMyPermissions = `
query MyPermissions {
  myPermissions {
    module
    canView
    canCreate
    canEdit
    canDelete
  }
}`

const queryMe = `
query Me {
  me {
    id
    name
    email
    roles
  }
}`

const queryLowStockBatchAlerts = `
query LowStockBatchAlerts($threshold: Int!) {
  lowStockBatchAlerts(threshold: $threshold) {
    batchId
    location
    qtyOnHand
    threshold
  }
}`

const queryExpiryAlerts = `
query ExpiryAlerts($days: Int!) {
  expiryAlerts(days: $days) {
    productId
    sku
    productName
    batchId
    batchNumber
    expiryDate
    qtyOnHand
    daysToExpiry
  }
}`
