package i18n

// translations holds the full message catalog. Both languages carry the same
// key set; keep them in sync when adding keys.
var translations = map[Lang]map[string]string{
	English: {
		// Header
		"app_title": "Fintrack",
		"subtitle":  "Personal Financial Manager",

		// Tabs
		"tab_users":        "Users",
		"tab_transactions": "Transactions",
		"tab_goals":        "Goals",

		// Users
		"users_title":           "Users",
		"btn_new_user":          "+ New User",
		"form_create_user":      "Create User",
		"form_edit_user":        "Edit User",
		"label_username":        "Username",
		"ph_username":           "Enter username",
		"label_current_amount":  "Current Amount ($)",
		"label_monthly_inputs":  "Monthly Inputs ($)",
		"label_monthly_outputs": "Monthly Outputs ($)",

		// Transactions
		"transactions_title":      "Transactions",
		"btn_new_transaction":     "+ New Transaction",
		"form_create_transaction": "Create Transaction",
		"form_edit_transaction":   "Edit Transaction",
		"label_description":       "Description",
		"ph_description":          "Enter description",
		"label_amount":            "Amount ($)",
		"label_is_debt":           "Is Debt",

		// Goals
		"goals_title":         "Goals",
		"btn_new_goal":        "+ New Goal",
		"form_create_goal":    "Create Goal",
		"form_edit_goal":      "Edit Goal",
		"label_name":          "Name",
		"ph_goal_name":        "Goal name",
		"ph_goal_description": "Goal description",
		"label_price":         "Price ($)",
		"label_pros":          "Pros",
		"ph_pros":             "Advantages of this goal",
		"label_cons":          "Cons",
		"ph_cons":             "Disadvantages of this goal",
		"label_deadline":      "Deadline",

		// Buttons
		"btn_create":      "Create",
		"btn_update":      "Update",
		"btn_cancel":      "Cancel",
		"btn_edit":        "Edit",
		"btn_delete":      "Delete",
		"btn_yes":         "Yes",
		"btn_no":          "No",
		"btn_change_user": "Change",
		"btn_go_to_users": "Go to Users",

		// Table headers
		"th_id":              "ID",
		"th_username":        "Username",
		"th_current_amount":  "Current Amount",
		"th_monthly_inputs":  "Monthly Inputs",
		"th_monthly_outputs": "Monthly Outputs",
		"th_actions":         "Actions",
		"th_description":     "Description",
		"th_amount":          "Amount",
		"th_debt":            "Debt",
		"th_created_at":      "Created At",
		"th_name":            "Name",
		"th_price":           "Price",
		"th_pros":            "Pros",
		"th_cons":            "Cons",
		"th_deadline":        "Deadline",

		// Status / empty messages
		"loading":         "Loading...",
		"no_users":        "No users found. Create one to get started!",
		"no_transactions": "No transactions found for this user.",
		"no_goals":        "No goals found for this user.",
		"fail_users":      "Failed to load users",
		"fail_transactions": "Failed to load transactions",
		"fail_goals":      "Failed to load goals",

		// Toasts
		"toast_user_created":        "User created successfully",
		"toast_user_updated":        "User updated successfully",
		"toast_user_deleted":        "User deleted successfully",
		"toast_transaction_created": "Transaction created successfully",
		"toast_transaction_updated": "Transaction updated successfully",
		"toast_transaction_deleted": "Transaction deleted successfully",
		"toast_goal_created":        "Goal created successfully",
		"toast_goal_updated":        "Goal updated successfully",
		"toast_goal_deleted":        "Goal deleted successfully",
		"toast_select_user":         "Please select a user",
		"toast_user_selected":       `User "{name}" selected`,
		"toast_invalid_amount":      "Invalid amount",
		"toast_request_failed":      "Request failed ({status})",
		"toast_network_error":       "Could not reach the server",

		// Confirm dialogs
		"confirm_delete_user":        `Are you sure you want to delete user "{name}" (ID: {id})?`,
		"confirm_delete_transaction": "Are you sure you want to delete transaction #{id}?",
		"confirm_delete_goal":        `Are you sure you want to delete goal "{name}" (ID: {id})?`,

		// Badges
		"badge_yes": "Yes",
		"badge_no":  "No",

		// Footer
		"footer_text": "Take control of your finances",

		// Currency
		"currency_symbol": "$",

		// Selected user
		"no_user_selected":    "No user selected",
		"selected_user_label": "Selected:",
		"hint_click_user":     "Click on a user row to select it and view their transactions and goals.",
		"prompt_select_user_transactions": "Select a user from the Users tab to view their transactions.",
		"prompt_select_user_goals":        "Select a user from the Users tab to view their goals.",
	},
	Portuguese: {
		// Header
		"app_title": "Fintrack",
		"subtitle":  "Gerenciador Financeiro Pessoal",

		// Tabs
		"tab_users":        "Usuários",
		"tab_transactions": "Transações",
		"tab_goals":        "Objetivos",

		// Users
		"users_title":           "Usuários",
		"btn_new_user":          "+ Novo Usuário",
		"form_create_user":      "Criar Usuário",
		"form_edit_user":        "Editar Usuário",
		"label_username":        "Nome de Usuário",
		"ph_username":           "Digite o nome de usuário",
		"label_current_amount":  "Saldo Atual (R$)",
		"label_monthly_inputs":  "Entradas Mensais (R$)",
		"label_monthly_outputs": "Saídas Mensais (R$)",

		// Transactions
		"transactions_title":      "Transações",
		"btn_new_transaction":     "+ Nova Transação",
		"form_create_transaction": "Criar Transação",
		"form_edit_transaction":   "Editar Transação",
		"label_description":       "Descrição",
		"ph_description":          "Digite a descrição",
		"label_amount":            "Valor (R$)",
		"label_is_debt":           "É Dívida",

		// Goals
		"goals_title":         "Objetivos",
		"btn_new_goal":        "+ Novo Objetivo",
		"form_create_goal":    "Criar Objetivo",
		"form_edit_goal":      "Editar Objetivo",
		"label_name":          "Nome",
		"ph_goal_name":        "Nome do objetivo",
		"ph_goal_description": "Descrição do objetivo",
		"label_price":         "Preço (R$)",
		"label_pros":          "Prós",
		"ph_pros":             "Vantagens deste objetivo",
		"label_cons":          "Contras",
		"ph_cons":             "Desvantagens deste objetivo",
		"label_deadline":      "Prazo",

		// Buttons
		"btn_create":      "Criar",
		"btn_update":      "Atualizar",
		"btn_cancel":      "Cancelar",
		"btn_edit":        "Editar",
		"btn_delete":      "Excluir",
		"btn_yes":         "Sim",
		"btn_no":          "Não",
		"btn_change_user": "Trocar",
		"btn_go_to_users": "Ir para Usuários",

		// Table headers
		"th_id":              "ID",
		"th_username":        "Nome de Usuário",
		"th_current_amount":  "Saldo Atual",
		"th_monthly_inputs":  "Entradas Mensais",
		"th_monthly_outputs": "Saídas Mensais",
		"th_actions":         "Ações",
		"th_description":     "Descrição",
		"th_amount":          "Valor",
		"th_debt":            "Dívida",
		"th_created_at":      "Criado Em",
		"th_name":            "Nome",
		"th_price":           "Preço",
		"th_pros":            "Prós",
		"th_cons":            "Contras",
		"th_deadline":        "Prazo",

		// Status / empty messages
		"loading":         "Carregando...",
		"no_users":        "Nenhum usuário encontrado. Crie um para começar!",
		"no_transactions": "Nenhuma transação encontrada para este usuário.",
		"no_goals":        "Nenhum objetivo encontrado para este usuário.",
		"fail_users":      "Falha ao carregar usuários",
		"fail_transactions": "Falha ao carregar transações",
		"fail_goals":      "Falha ao carregar objetivos",

		// Toasts
		"toast_user_created":        "Usuário criado com sucesso",
		"toast_user_updated":        "Usuário atualizado com sucesso",
		"toast_user_deleted":        "Usuário excluído com sucesso",
		"toast_transaction_created": "Transação criada com sucesso",
		"toast_transaction_updated": "Transação atualizada com sucesso",
		"toast_transaction_deleted": "Transação excluída com sucesso",
		"toast_goal_created":        "Objetivo criado com sucesso",
		"toast_goal_updated":        "Objetivo atualizado com sucesso",
		"toast_goal_deleted":        "Objetivo excluído com sucesso",
		"toast_select_user":         "Por favor, selecione um usuário",
		"toast_user_selected":       `Usuário "{name}" selecionado`,
		"toast_invalid_amount":      "Valor inválido",
		"toast_request_failed":      "Falha na requisição ({status})",
		"toast_network_error":       "Não foi possível conectar ao servidor",

		// Confirm dialogs
		"confirm_delete_user":        `Tem certeza que deseja excluir o usuário "{name}" (ID: {id})?`,
		"confirm_delete_transaction": "Tem certeza que deseja excluir a transação #{id}?",
		"confirm_delete_goal":        `Tem certeza que deseja excluir o objetivo "{name}" (ID: {id})?`,

		// Badges
		"badge_yes": "Sim",
		"badge_no":  "Não",

		// Footer
		"footer_text": "Assuma o controle das suas finanças",

		// Currency
		"currency_symbol": "R$",

		// Selected user
		"no_user_selected":    "Nenhum usuário selecionado",
		"selected_user_label": "Selecionado:",
		"hint_click_user":     "Clique em uma linha de usuário para selecioná-lo e ver suas transações e objetivos.",
		"prompt_select_user_transactions": "Selecione um usuário na aba Usuários para ver suas transações.",
		"prompt_select_user_goals":        "Selecione um usuário na aba Usuários para ver seus objetivos.",
	},
}
