package schema

const (
	EntityCustomer = "customer"
	EntityQuote    = "quote"
	EntityOrder    = "order"
)

var (
	customer = &Descriptor{
		Entity: EntityCustomer,
		Fields: []Field{unique("email")},
	}

	quote = &Descriptor{
		Entity: EntityQuote,
		Fields: []Field{
			fk("customer_id", "customer"),
			unique("email"),
		},
		Nested: []*Descriptor{
			{
				Entity: "quote_item",
				Fields: []Field{fk("quote_id", "quote"), fk("product_id", "product")},
			},
			{
				Entity: "quote_payment",
				Fields: []Field{fk("quote_id", "quote")},
			},
		},
	}

	order = &Descriptor{
		Entity: EntityOrder,
		Fields: []Field{
			fk("customer_id", "customer"),
			fk("quote_id", "quote"),
		},
		Nested: []*Descriptor{
			{
				Entity: "order_item",
				Fields: []Field{fk("order_id", "order"), fk("product_id", "product")},
			},
			{
				Entity: "order_payment",
				Fields: []Field{fk("order_id", "order")},
			},
		},
	}

	registry = map[string]*Descriptor{
		EntityCustomer: customer,
		EntityQuote:    quote,
		EntityOrder:    order,
	}
)

func Customer() *Descriptor { return customer }

// Quote returns the descriptor of the quote aggregate.
func Quote() *Descriptor { return quote }

// Order returns the descriptor of the order aggregate.
func Order() *Descriptor { return order }

// Lookup returns the descriptor registered for entity, or nil.
func Lookup(entity string) *Descriptor { return registry[entity] }
